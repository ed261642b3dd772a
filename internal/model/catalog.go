package model

// DefaultStyle is the theme and font identifier used when none or an unknown one is set.
const DefaultStyle = "default"

// Style is a cosmetic option the UI resolves to presentation values.
type Style struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var Themes = []Style{
	{ID: DefaultStyle, Name: "기본"},
	{ID: "christmas", Name: "크리스마스"},
	{ID: "pink", Name: "핑크"},
	{ID: "ocean", Name: "바다"},
	{ID: "aurora", Name: "오로라"},
	{ID: "space", Name: "우주"},
	{ID: "city", Name: "도시"},
	{ID: "newyear", Name: "신년"},
}

var Fonts = []Style{
	{ID: DefaultStyle, Name: "기본"},
	{ID: "nanum-gothic", Name: "나눔고딕"},
	{ID: "nanum-myeongjo", Name: "나눔명조"},
	{ID: "nanum-pen", Name: "나눔손글씨"},
	{ID: "poor-story", Name: "푸어스토리"},
	{ID: "jua", Name: "주아"},
}

// Emojis offered by the message form. Messages are not validated against this set.
var Emojis = []string{
	"😊", "🥰", "😍", "🤗", "💕", "💖", "✨", "🌟", "🎉", "🎊",
	"🌸", "🌺", "🌻", "🌼", "🍀", "🦋", "🌈", "☀️", "🌙", "⭐",
}

// ResolveTheme returns id if it names a known theme, otherwise DefaultStyle.
func ResolveTheme(id string) string {
	return resolve(Themes, id)
}

// ResolveFont returns id if it names a known font, otherwise DefaultStyle.
func ResolveFont(id string) string {
	return resolve(Fonts, id)
}

func resolve(styles []Style, id string) string {
	for _, s := range styles {
		if s.ID == id {
			return id
		}
	}
	return DefaultStyle
}
