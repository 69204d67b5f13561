package compositor

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// BackgroundType selects the background painter variant.
type BackgroundType string

const (
	BackgroundSolid     BackgroundType = "solid"
	BackgroundGradient  BackgroundType = "gradient"
	BackgroundPattern   BackgroundType = "pattern"
	BackgroundWallpaper BackgroundType = "wallpaper"
)

// BrowserStyle selects the simulated window frame drawn above the image.
type BrowserStyle string

const (
	BrowserNone   BrowserStyle = "none"
	BrowserChrome BrowserStyle = "chrome"
	BrowserSafari BrowserStyle = "safari"
)

// ErrInvalidSettings is returned (wrapped) when a Settings value fails validation.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings describes one composite. It is a value: every render receives a
// complete copy and nothing in this package mutates it.
type Settings struct {
	BorderRadius    float64        `json:"borderRadius" yaml:"borderRadius" validate:"gte=0"`
	Padding         float64        `json:"padding" yaml:"padding" validate:"gte=0"`
	BackgroundType  BackgroundType `json:"backgroundType" yaml:"backgroundType" validate:"oneof=solid gradient pattern wallpaper"`
	BackgroundColor string         `json:"backgroundColor" yaml:"backgroundColor" validate:"hexcolor"`
	GradientStart   string         `json:"gradientStart" yaml:"gradientStart" validate:"hexcolor"`
	GradientEnd     string         `json:"gradientEnd" yaml:"gradientEnd" validate:"hexcolor"`
	Scale           float64        `json:"scale" yaml:"scale" validate:"gt=0"`
	BrowserStyle    BrowserStyle   `json:"browserStyle" yaml:"browserStyle" validate:"oneof=none chrome safari"`
	Shadow          float64        `json:"shadow" yaml:"shadow" validate:"gte=0"`
	ShadowColor     string         `json:"shadowColor" yaml:"shadowColor" validate:"hexcolor"`
	WallpaperURL    string         `json:"wallpaperUrl" yaml:"wallpaperUrl"`
}

// DefaultSettings returns the settings a fresh session starts with.
func DefaultSettings() Settings {
	return Settings{
		BorderRadius:    12,
		Padding:         100,
		BackgroundType:  BackgroundSolid,
		BackgroundColor: "#f0f0f0",
		GradientStart:   "#667eea",
		GradientEnd:     "#764ba2",
		Scale:           1.4,
		BrowserStyle:    BrowserNone,
		Shadow:          20,
		ShadowColor:     "#00000060",
	}
}

// HasChrome reports whether a browser frame is drawn.
func (s Settings) HasChrome() bool {
	return s.BrowserStyle != BrowserNone
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func settingsValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks ranges, enum values and color syntax.
func (s Settings) Validate() error {
	if err := settingsValidator().Struct(s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSettings, validationErrorMessage(err))
	}
	return nil
}

// validationErrorMessage turns validator errors into one readable line.
func validationErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, ve := range verrs {
		field := jsonName(ve.Field())
		switch ve.Tag() {
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be >= %s", field, ve.Param()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be > %s", field, ve.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", field, ve.Param(), ve.Value()))
		case "hexcolor":
			msgs = append(msgs, fmt.Sprintf("%s must be a hex color, got %q", field, ve.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, ve.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

func jsonName(field string) string {
	if field == "" {
		return field
	}
	if field == "WallpaperURL" {
		return "wallpaperUrl"
	}
	return strings.ToLower(field[:1]) + field[1:]
}
