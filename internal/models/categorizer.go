package models

// CategoryConfig is one row of the ordered category table.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// TypeRule maps a keyword list to a transaction type. Rules are evaluated in
// order and the first rule with a matching keyword decides the type.
type TypeRule struct {
	Type     TransactionType `yaml:"type"`
	Keywords []string        `yaml:"keywords"`
}

// TaxonomyConfig is the YAML document describing the classification tables.
type TaxonomyConfig struct {
	Categories      []CategoryConfig `yaml:"categories"`
	TypeRules       []TypeRule       `yaml:"type_rules"`
	QualityKeywords []string         `yaml:"quality_keywords"`
}
