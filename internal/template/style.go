package template

// TemplateID names a visual layout policy.
type TemplateID string

const (
	ClassicDark TemplateID = "classic-dark"
	MobiLight   TemplateID = "mobi-light"
	ExamKorean  TemplateID = "exam-korean"
)

// Settings carries the aspect ratio, the selected template and exactly one
// style variant. Only the variant matching Template is non-nil; switching
// templates is a full replace so no field of a previous template can leak
// into rendering.
type Settings struct {
	AspectRatio string            `yaml:"aspect_ratio"`
	Template    TemplateID        `yaml:"template"`
	ClassicDark *ClassicDarkStyle `yaml:"classic_dark,omitempty"`
	MobiLight   *MobiLightStyle   `yaml:"mobi_light,omitempty"`
	ExamKorean  *ExamKoreanStyle  `yaml:"exam_korean,omitempty"`
}

// ClassicDarkStyle is the dark caption-over-photo layout. Guideline values
// are percentages of frame height.
type ClassicDarkStyle struct {
	TitleText            string  `yaml:"title_text"`
	TitleFontSize        float64 `yaml:"title_font_size"`
	SubtitleFontSize     float64 `yaml:"subtitle_font_size"`
	CTAFontSize          float64 `yaml:"cta_font_size"`
	StrokeWidth          int     `yaml:"stroke_width"`
	TitleGuidelinePct    float64 `yaml:"title_guideline_pct"`
	SubtitleGuidelinePct float64 `yaml:"subtitle_guideline_pct"`
	CTAGuidelinePct      float64 `yaml:"cta_guideline_pct"`
	CTAText              string  `yaml:"cta_text"`
	CTALink              string  `yaml:"cta_link"`
	SubtitleBGOpacityPct int     `yaml:"subtitle_bg_opacity_pct"`
}

// MobiLightStyle simulates a light mobile-app screen: header bar, rounded
// content card, accent-colored CTA.
type MobiLightStyle struct {
	HeaderText           string  `yaml:"header_text"`
	AccentColor          string  `yaml:"accent_color"`
	HeaderFontSize       float64 `yaml:"header_font_size"`
	SubtitleFontSize     float64 `yaml:"subtitle_font_size"`
	CTAFontSize          float64 `yaml:"cta_font_size"`
	StrokeWidth          int     `yaml:"stroke_width"`
	HeaderGuidelinePct   float64 `yaml:"header_guideline_pct"`
	SubtitleGuidelinePct float64 `yaml:"subtitle_guideline_pct"`
	CTAGuidelinePct      float64 `yaml:"cta_guideline_pct"`
	CTAText              string  `yaml:"cta_text"`
	CTALink              string  `yaml:"cta_link"`
	SubtitleBGOpacityPct int     `yaml:"subtitle_bg_opacity_pct"`
}

// ExamKoreanStyle simulates a printed exam sheet in the style of Korean
// study shorts: paper background, ruled header box, question label and a
// CTA slot.
type ExamKoreanStyle struct {
	SubjectText          string  `yaml:"subject_text"`
	QuestionLabel        string  `yaml:"question_label"`
	TitleFontSize        float64 `yaml:"title_font_size"`
	SubtitleFontSize     float64 `yaml:"subtitle_font_size"`
	CTAFontSize          float64 `yaml:"cta_font_size"`
	StrokeWidth          int     `yaml:"stroke_width"`
	HeaderGuidelinePct   float64 `yaml:"header_guideline_pct"`
	SubtitleGuidelinePct float64 `yaml:"subtitle_guideline_pct"`
	CTAGuidelinePct      float64 `yaml:"cta_guideline_pct"`
	CTAText              string  `yaml:"cta_text"`
	CTALink              string  `yaml:"cta_link"`
	SubtitleBGOpacityPct int     `yaml:"subtitle_bg_opacity_pct"`
}

// DefaultSettings returns settings for the given template with that
// template's preset style.
func DefaultSettings(id TemplateID) *Settings {
	s := &Settings{AspectRatio: "9:16"}
	s.ApplyTemplate(id)
	return s
}

// ApplyTemplate switches the active template and replaces the whole style
// with the template's preset defaults. It never merges: all other variants
// are reset to nil.
func (s *Settings) ApplyTemplate(id TemplateID) {
	s.Template = id
	s.ClassicDark = nil
	s.MobiLight = nil
	s.ExamKorean = nil

	switch id {
	case MobiLight:
		s.MobiLight = &MobiLightStyle{
			HeaderText:           "Daily Shorts",
			AccentColor:          "#2f6fed",
			HeaderFontSize:       40,
			SubtitleFontSize:     34,
			CTAFontSize:          28,
			StrokeWidth:          0,
			HeaderGuidelinePct:   8,
			SubtitleGuidelinePct: 78,
			CTAGuidelinePct:      92,
			CTAText:              "Follow for more",
			SubtitleBGOpacityPct: 70,
		}
	case ExamKorean:
		// Preset chrome text must stay within the embedded faces' glyph
		// coverage; Hangul presets would draw as tofu until a CJK face
		// ships with the binary. Projects can still set Hangul text once
		// one does.
		s.ExamKorean = &ExamKoreanStyle{
			SubjectText:          "Today's Question",
			QuestionLabel:        "Q.",
			TitleFontSize:        42,
			SubtitleFontSize:     36,
			CTAFontSize:          30,
			StrokeWidth:          0,
			HeaderGuidelinePct:   12,
			SubtitleGuidelinePct: 74,
			CTAGuidelinePct:      90,
			CTAText:              "Like & Subscribe!",
			SubtitleBGOpacityPct: 80,
		}
	default:
		s.Template = ClassicDark
		s.ClassicDark = &ClassicDarkStyle{
			TitleFontSize:        48,
			SubtitleFontSize:     38,
			CTAFontSize:          30,
			StrokeWidth:          2,
			TitleGuidelinePct:    10,
			SubtitleGuidelinePct: 76,
			CTAGuidelinePct:      91,
			CTAText:              "Subscribe!",
			SubtitleBGOpacityPct: 70,
		}
	}
}

// Clone deep-copies the settings; export snapshots use it so that live edits
// never affect a running job.
func (s *Settings) Clone() *Settings {
	out := &Settings{AspectRatio: s.AspectRatio, Template: s.Template}
	if s.ClassicDark != nil {
		v := *s.ClassicDark
		out.ClassicDark = &v
	}
	if s.MobiLight != nil {
		v := *s.MobiLight
		out.MobiLight = &v
	}
	if s.ExamKorean != nil {
		v := *s.ExamKorean
		out.ExamKorean = &v
	}
	return out
}

// subtitleDefaults returns the font size, stroke width and default pill
// opacity of the active variant.
func (s *Settings) subtitleDefaults() (size float64, stroke int, opacity int) {
	switch {
	case s.MobiLight != nil:
		return s.MobiLight.SubtitleFontSize, s.MobiLight.StrokeWidth, s.MobiLight.SubtitleBGOpacityPct
	case s.ExamKorean != nil:
		return s.ExamKorean.SubtitleFontSize, s.ExamKorean.StrokeWidth, s.ExamKorean.SubtitleBGOpacityPct
	case s.ClassicDark != nil:
		return s.ClassicDark.SubtitleFontSize, s.ClassicDark.StrokeWidth, s.ClassicDark.SubtitleBGOpacityPct
	}
	return 38, 2, 70
}
