package domain

// LanguageInfo carries display metadata for a known language.
type LanguageInfo struct {
	Key  string
	Name string
	Icon string
}

// Languages is the fixed set of languages that get a dedicated section in
// the UI, in display order. Cards and chapters with other language values
// are accepted and stored; they just render without a dedicated section.
var Languages = []LanguageInfo{
	{Key: "javascript", Name: "JavaScript", Icon: "⚡"},
	{Key: "html", Name: "HTML", Icon: "🌐"},
	{Key: "css", Name: "CSS", Icon: "🎨"},
	{Key: "php", Name: "PHP", Icon: "🐘"},
}

// LanguageIcon returns the icon for a language, or a folder for unknown ones.
func LanguageIcon(key string) string {
	for _, l := range Languages {
		if l.Key == key {
			return l.Icon
		}
	}
	return "📁"
}
