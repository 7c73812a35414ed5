// Package builder composes the spatial structure of a model: a project
// with its sites, buildings, storeys and the walls placed in them.
//
// Each level is built inside a closure. When the closure returns, by
// error or panic included, the scope writes its closing relationship
// records exactly once, so a partially built level is never left without
// them.
//
//	b := builder.New(store, builder.Options{})
//	_, err := b.WithProject("Demo", func(p *builder.ProjectScope) error {
//		return p.WithSite("Site", func(s *builder.SiteScope) error {
//			return s.WithBuilding("Main", func(bl *builder.BuildingScope) error {
//				return bl.WithStorey("Level 1", 0, func(st *builder.StoreyScope) error {
//					_, err := st.AddWall("W1", model.Inline(&model.Point3D{}))
//					return err
//				})
//			})
//		})
//	})
package builder
