package scoring

// SkillCatalog resolves skill ids to display names.
type SkillCatalog interface {
	SkillName(id string) string
}

// MapCatalog is a SkillCatalog backed by a map. Unknown ids resolve to
// themselves.
type MapCatalog map[string]string

// SkillName implements SkillCatalog.
func (c MapCatalog) SkillName(id string) string {
	if name, ok := c[id]; ok && name != "" {
		return name
	}
	return id
}
