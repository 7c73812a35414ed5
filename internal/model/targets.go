package model

// spatialKeywords are the unmodeled spatial structure elements. Together
// with the modeled spatial kinds they may decompose or contain one another.
var spatialKeywords = []string{
	"IFCSPACE",
	"IFCSPATIALZONE",
	"IFCEXTERNALSPATIALELEMENT",
	"IFCFACILITY",
	"IFCFACILITYPART",
	"IFCBRIDGE",
	"IFCBRIDGEPART",
	"IFCROAD",
	"IFCROADPART",
	"IFCRAILWAY",
	"IFCRAILWAYPART",
	"IFCMARINEFACILITY",
	"IFCMARINEPART",
}

// productKeywords are the unmodeled products a spatial structure may
// contain, across IFC2X3, IFC4 and IFC4X3.
var productKeywords = []string{
	// building elements
	"IFCBUILDINGELEMENTPROXY",
	"IFCBUILDINGELEMENTPART",
	"IFCWALLSTANDARDCASE",
	"IFCWALLELEMENTEDCASE",
	"IFCCURTAINWALL",
	"IFCSLAB",
	"IFCSLABSTANDARDCASE",
	"IFCSLABELEMENTEDCASE",
	"IFCROOF",
	"IFCCOLUMN",
	"IFCCOLUMNSTANDARDCASE",
	"IFCBEAM",
	"IFCBEAMSTANDARDCASE",
	"IFCMEMBER",
	"IFCMEMBERSTANDARDCASE",
	"IFCPLATE",
	"IFCPLATESTANDARDCASE",
	"IFCWINDOW",
	"IFCWINDOWSTANDARDCASE",
	"IFCDOOR",
	"IFCDOORSTANDARDCASE",
	"IFCSTAIR",
	"IFCSTAIRFLIGHT",
	"IFCRAMP",
	"IFCRAMPFLIGHT",
	"IFCRAILING",
	"IFCCOVERING",
	"IFCFOOTING",
	"IFCPILE",
	"IFCCHIMNEY",
	"IFCSHADINGDEVICE",
	"IFCELEMENTASSEMBLY",
	"IFCOPENINGELEMENT",
	"IFCOPENINGSTANDARDCASE",

	// furnishing and fittings
	"IFCFURNISHINGELEMENT",
	"IFCFURNITURE",
	"IFCSYSTEMFURNITUREELEMENT",
	"IFCDISCRETEACCESSORY",
	"IFCFASTENER",
	"IFCMECHANICALFASTENER",
	"IFCREINFORCINGBAR",
	"IFCREINFORCINGMESH",
	"IFCTENDON",
	"IFCTENDONANCHOR",

	// distribution
	"IFCDISTRIBUTIONELEMENT",
	"IFCDISTRIBUTIONCONTROLELEMENT",
	"IFCDISTRIBUTIONFLOWELEMENT",
	"IFCDISTRIBUTIONCHAMBERELEMENT",
	"IFCFLOWTERMINAL",
	"IFCFLOWSEGMENT",
	"IFCFLOWFITTING",
	"IFCFLOWCONTROLLER",
	"IFCFLOWMOVINGDEVICE",
	"IFCFLOWSTORAGEDEVICE",
	"IFCFLOWTREATMENTDEVICE",
	"IFCENERGYCONVERSIONDEVICE",
	"IFCAIRTERMINAL",
	"IFCDUCTSEGMENT",
	"IFCDUCTFITTING",
	"IFCPIPESEGMENT",
	"IFCPIPEFITTING",
	"IFCCABLESEGMENT",
	"IFCCABLECARRIERSEGMENT",
	"IFCSANITARYTERMINAL",
	"IFCLIGHTFIXTURE",
	"IFCOUTLET",
	"IFCPUMP",
	"IFCVALVE",
	"IFCSENSOR",
	"IFCUNITARYEQUIPMENT",

	// other products
	"IFCTRANSPORTELEMENT",
	"IFCGEOGRAPHICELEMENT",
	"IFCCIVILELEMENT",
	"IFCVIRTUALELEMENT",
	"IFCANNOTATION",
	"IFCGRID",
	"IFCPROXY",
}

// spatialTargets are the types that may decompose or contain others.
var spatialTargets = append([]Target{
	Modeled(KindProject),
	Modeled(KindSite),
	Modeled(KindBuilding),
	Modeled(KindBuildingStorey),
}, unmodeled(spatialKeywords)...)

// elementTargets are the element types a spatial structure may contain.
var elementTargets = append([]Target{Modeled(KindWall)}, unmodeled(productKeywords)...)

func unmodeled(keywords []string) []Target {
	out := make([]Target, len(keywords))
	for i, kw := range keywords {
		out[i] = Unmodeled(kw)
	}
	return out
}
