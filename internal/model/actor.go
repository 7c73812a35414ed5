package model

import (
	"github.com/roach88/stepgraph/internal/ir"
	"github.com/roach88/stepgraph/internal/step"
)

// Organization is an IFCORGANIZATION.
type Organization struct {
	Identification ir.Optional[ir.Label]
	Name           ir.Label
	Description    ir.Optional[ir.Label]
	Roles          ir.Optional[[]ir.Ref[Record]]
	Addresses      ir.Optional[[]ir.Ref[Record]]
}

func (*Organization) Kind() Kind { return KindOrganization }
func (*Organization) record()    {}

func (r *Organization) WriteStep(w *step.Writer) {
	w.Begin(KindOrganization.Keyword())
	step.WriteOpt(w, r.Identification, (*step.Writer).Label)
	w.Label(r.Name)
	step.WriteOpt(w, r.Description, (*step.Writer).Label)
	step.WriteOpt(w, r.Roles, writeList(writeRef[Record]))
	step.WriteOpt(w, r.Addresses, writeList(writeRef[Record]))
	w.End()
}

func parseOrganization(p *step.Parser) (Record, error) {
	r := &Organization{}
	a := openArgs(p, KindOrganization)
	field(a, "Identification", &r.Identification, opt((*step.Parser).Label))
	field(a, "Name", &r.Name, (*step.Parser).Label)
	field(a, "Description", &r.Description, opt((*step.Parser).Label))
	field(a, "Roles", &r.Roles, opt(list(ref[Record])))
	field(a, "Addresses", &r.Addresses, opt(list(ref[Record])))
	if err := a.close(); err != nil {
		return nil, err
	}
	return r, nil
}

var organizationRefs = []RefField{
	refOptMany("roles", func(r *Organization) ir.Optional[[]ir.Ref[Record]] { return r.Roles },
		Unmodeled("IFCACTORROLE")),
	refOptMany("addresses", func(r *Organization) ir.Optional[[]ir.Ref[Record]] { return r.Addresses },
		Unmodeled("IFCPOSTALADDRESS"), Unmodeled("IFCTELECOMADDRESS")),
}

// Application is an IFCAPPLICATION.
type Application struct {
	ApplicationDeveloper  ir.Ref[*Organization]
	Version               ir.Label
	ApplicationFullName   ir.Label
	ApplicationIdentifier ir.Label
}

func (*Application) Kind() Kind { return KindApplication }
func (*Application) record()    {}

func (r *Application) WriteStep(w *step.Writer) {
	w.Begin(KindApplication.Keyword())
	writeRef(w, r.ApplicationDeveloper)
	w.Label(r.Version)
	w.Label(r.ApplicationFullName)
	w.Label(r.ApplicationIdentifier)
	w.End()
}

func parseApplication(p *step.Parser) (Record, error) {
	r := &Application{}
	a := openArgs(p, KindApplication)
	field(a, "ApplicationDeveloper", &r.ApplicationDeveloper, ref[*Organization])
	field(a, "Version", &r.Version, (*step.Parser).Label)
	field(a, "ApplicationFullName", &r.ApplicationFullName, (*step.Parser).Label)
	field(a, "ApplicationIdentifier", &r.ApplicationIdentifier, (*step.Parser).Label)
	if err := a.close(); err != nil {
		return nil, err
	}
	return r, nil
}

var applicationRefs = []RefField{
	refOne("application_developer", func(r *Application) ir.Ref[*Organization] { return r.ApplicationDeveloper },
		Modeled(KindOrganization)),
}
