package domain

// CodeKind is the type of Dart source the code generator produces.
type CodeKind string

// Available code kinds.
const (
	CodeKindModel     CodeKind = "model"
	CodeKindPage      CodeKind = "page"
	CodeKindComponent CodeKind = "component"
	CodeKindAPI       CodeKind = "api"
	CodeKindLayout    CodeKind = "layout"
)

// CodeKinds lists every supported code kind in display order.
func CodeKinds() []CodeKind {
	return []CodeKind{CodeKindModel, CodeKindPage, CodeKindComponent, CodeKindAPI, CodeKindLayout}
}

// IsValid returns true if the code kind is recognised.
func (k CodeKind) IsValid() bool {
	switch k {
	case CodeKindModel, CodeKindPage, CodeKindComponent, CodeKindAPI, CodeKindLayout:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k CodeKind) String() string {
	return string(k)
}

// ProjectTemplate is a Duxt project layout.
type ProjectTemplate string

// Available project templates.
const (
	ProjectTemplateStatic ProjectTemplate = "static"
	ProjectTemplateServer ProjectTemplate = "server"
	ProjectTemplateClient ProjectTemplate = "client"
)

// ProjectTemplates lists every supported project template.
func ProjectTemplates() []ProjectTemplate {
	return []ProjectTemplate{ProjectTemplateStatic, ProjectTemplateServer, ProjectTemplateClient}
}

// IsValid returns true if the template is recognised.
func (t ProjectTemplate) IsValid() bool {
	switch t {
	case ProjectTemplateStatic, ProjectTemplateServer, ProjectTemplateClient:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t ProjectTemplate) String() string {
	return string(t)
}

// ComponentPackage is a Duxt UI package whose API can be looked up.
type ComponentPackage string

// Available component packages.
const (
	PackageDuxtHTML  ComponentPackage = "duxt_html"
	PackageDuxtUI    ComponentPackage = "duxt_ui"
	PackageDuxtIcons ComponentPackage = "duxt_icons"
)

// ComponentPackages lists every supported component package.
func ComponentPackages() []ComponentPackage {
	return []ComponentPackage{PackageDuxtHTML, PackageDuxtUI, PackageDuxtIcons}
}

// Section returns the docs section that documents the package.
// Returns "" for unknown packages.
func (p ComponentPackage) Section() string {
	switch p {
	case PackageDuxtHTML:
		return "duxt-html"
	case PackageDuxtUI:
		return "duxt-ui"
	case PackageDuxtIcons:
		return "duxt-icons"
	default:
		return ""
	}
}

// IsValid returns true if the package is recognised.
func (p ComponentPackage) IsValid() bool {
	return p.Section() != ""
}

// Field is a named, typed property used by model and CRUD generators.
type Field struct {
	Name string
	Type string
}

// GeneratedCode is the output of the code generator.
type GeneratedCode struct {
	Kind CodeKind
	Name string
	Code string
}
