package config

// Navigation tables are external, read-only configuration: the session
// core only looks entries up, it never edits them. Keys are
// professional-type tags in string form so this package stays free of
// internal domain imports.

// NavItem is a single navigation entry shown to a signed-in user.
type NavItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// NavigationConfig maps a role (and, for professionals, a
// professional-type tag) to an ordered navigation list and a
// human-readable label.
type NavigationConfig struct {
	// UserDefault is the navigation for the unprivileged role.
	UserDefault []NavItem

	// Professional maps a professional-type tag to its navigation.
	Professional map[string][]NavItem

	// Labels maps a professional-type tag to its display label.
	Labels map[string]string

	// ProfessionalFallback is used when a professional type has no
	// dedicated navigation or label.
	ProfessionalFallback []NavItem
	FallbackLabel        string
}

// ForProfessionalType returns the navigation for the given tag,
// falling back to the generic professional navigation.
func (n NavigationConfig) ForProfessionalType(tag string) []NavItem {
	if items, ok := n.Professional[tag]; ok {
		return items
	}
	return n.ProfessionalFallback
}

// LabelFor returns the display label for the given tag, falling back
// to the generic professional label.
func (n NavigationConfig) LabelFor(tag string) string {
	if label, ok := n.Labels[tag]; ok {
		return label
	}
	return n.FallbackLabel
}

// DefaultNavigation returns the platform navigation tables.
func DefaultNavigation() NavigationConfig {
	return NavigationConfig{
		UserDefault: []NavItem{
			{Label: "Inicio", Path: "/dashboard/usuario"},
			{Label: "Mis consultas", Path: "/dashboard/usuario/consultas"},
			{Label: "Documentos", Path: "/dashboard/usuario/documentos"},
			{Label: "Mi perfil", Path: "/dashboard/usuario/perfil"},
		},
		Professional: map[string][]NavItem{
			"abogado": {
				{Label: "Inicio", Path: "/dashboard/profesional"},
				{Label: "Expedientes", Path: "/dashboard/profesional/expedientes"},
				{Label: "Clientes", Path: "/dashboard/profesional/clientes"},
				{Label: "Agenda", Path: "/dashboard/profesional/agenda"},
			},
			"notario": {
				{Label: "Inicio", Path: "/dashboard/profesional"},
				{Label: "Escrituras", Path: "/dashboard/profesional/escrituras"},
				{Label: "Citas", Path: "/dashboard/profesional/citas"},
			},
			"procurador": {
				{Label: "Inicio", Path: "/dashboard/profesional"},
				{Label: "Notificaciones", Path: "/dashboard/profesional/notificaciones"},
				{Label: "Expedientes", Path: "/dashboard/profesional/expedientes"},
			},
		},
		Labels: map[string]string{
			"abogado":    "Abogado",
			"notario":    "Notario",
			"procurador": "Procurador",
		},
		ProfessionalFallback: []NavItem{
			{Label: "Inicio", Path: "/dashboard/profesional"},
			{Label: "Mi perfil", Path: "/dashboard/profesional/perfil"},
		},
		FallbackLabel: "Profesional",
	}
}
