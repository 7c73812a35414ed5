package model

import (
	"fmt"
	"strings"

	"github.com/roach88/stepgraph/internal/step"
)

// grammar parses the parameter list of one keyword. The keyword itself
// has been consumed when parse is called.
type grammar struct {
	keyword string
	parse   func(*step.Parser) (Record, error)
}

// grammars is the dispatch table, tried in order. Keywords are compared
// as whole tokens and must be unique, so the order never changes which
// grammar matches.
var grammars = []grammar{
	{KindOrganization.Keyword(), parseOrganization},
	{KindApplication.Keyword(), parseApplication},
	{KindPoint3D.Keyword(), parseCartesianPoint},
	{KindDirection3D.Keyword(), parseDirection},
	{KindAxis2D.Keyword(), parseAxis2D},
	{KindAxis3D.Keyword(), parseAxis3D},
	{KindLocalPlacement.Keyword(), parseLocalPlacement},
	{KindGeometricRepresentationContext.Keyword(), parseGeometricRepresentationContext},
	{KindProject.Keyword(), parseProject},
	{KindSite.Keyword(), parseSite},
	{KindBuilding.Keyword(), parseBuilding},
	{KindBuildingStorey.Keyword(), parseBuildingStorey},
	{KindWall.Keyword(), parseWall},
	{KindRelAggregates.Keyword(), parseRelAggregates},
	{KindRelContainedInSpatialStructure.Keyword(), parseRelContainedInSpatialStructure},
}

var referenceTables = [kindCount][]RefField{
	KindAxis2D:                         axis2DRefs,
	KindAxis3D:                         axis3DRefs,
	KindLocalPlacement:                 localPlacementRefs,
	KindGeometricRepresentationContext: geometricRepresentationContextRefs,
	KindOrganization:                   organizationRefs,
	KindApplication:                    applicationRefs,
	KindProject:                        projectRefs,
	KindSite:                           siteRefs,
	KindBuilding:                       buildingRefs,
	KindBuildingStorey:                 buildingStoreyRefs,
	KindWall:                           wallRefs,
	KindRelAggregates:                  relAggregatesRefs,
	KindRelContainedInSpatialStructure: relContainedRefs,
}

func init() {
	seen := make(map[string]bool, len(grammars))
	for _, g := range grammars {
		if seen[g.keyword] {
			panic(fmt.Sprintf("model: duplicate grammar keyword %s", g.keyword))
		}
		seen[g.keyword] = true
	}
}

func lookupGrammar(keyword string) *grammar {
	for i := range grammars {
		if grammars[i].keyword == keyword {
			return &grammars[i]
		}
	}
	return nil
}

// Known reports whether keyword has a typed grammar.
func Known(keyword string) bool {
	return lookupGrammar(keyword) != nil
}

// ParseRecord parses one modeled record body such as IFCDIRECTION((1.,0.)),
// without identifier or terminator. Unknown keywords fail; the opaque
// fallback is the caller's decision. On failure p is left where it started.
func ParseRecord(p *step.Parser) (Record, error) {
	start := p.Pos()
	kw, err := p.Keyword()
	if err != nil {
		return nil, err
	}
	g := lookupGrammar(kw)
	if g == nil {
		p.Reset(start)
		p.SkipSpace()
		return nil, p.Errorf("unknown record keyword %s", kw)
	}
	rec, err := g.parse(p)
	if err != nil {
		p.Reset(start)
		return nil, err
	}
	return rec, nil
}

// ParseRecordText parses a single record body with an optional trailing
// ";". Modeled keywords must match their grammar; unknown keywords yield
// an *Opaque.
func ParseRecordText(text string) (Record, error) {
	p := step.NewParser(text)
	start := p.Pos()
	kw, err := p.Keyword()
	if err != nil {
		return nil, err
	}
	p.Reset(start)
	if !Known(kw) {
		return parseOpaqueText(text)
	}
	rec, err := ParseRecord(p)
	if err != nil {
		return nil, err
	}
	p.TryLiteral(";")
	if !p.AtEnd() {
		return nil, p.Errorf("unexpected input after %s record", kw)
	}
	return rec, nil
}

func parseOpaqueText(text string) (Record, error) {
	src := text
	if !strings.HasSuffix(strings.TrimRight(text, " \t\r\n"), ";") {
		src += ";"
	}
	p := step.NewParser(src)
	o, err := ParseOpaque(p)
	if err != nil {
		return nil, err
	}
	if err := p.Terminator(); err != nil {
		return nil, err
	}
	if !p.AtEnd() {
		return nil, p.Errorf("unexpected input after %s record", o.Keyword)
	}
	return o, nil
}

// RecordText formats r as a terminated record body, the inverse of
// ParseRecordText.
func RecordText(r Record) string {
	return Format(r) + ";"
}
