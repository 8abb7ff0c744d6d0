package config

import (
	"math"

	"fyne.io/fyne/v2"
)

// Preference keys.
const (
	AppNotificationsEnabledKey = "app_notifications_enabled"
	AppUpdateCheckEnabledKey   = "app_update_check_enabled"
	AppThemeKey                = "app_theme"

	ImageModelKey      = "genai_image_model"
	VideoModelKey      = "genai_video_model"
	APIBaseURLKey      = "genai_api_base_url"
	RequestIntervalKey = "genai_request_interval_ms"

	FitMarginKey       = "canvas_fit_margin"
	ZoomStepKey        = "canvas_zoom_step"
	HandleThicknessKey = "canvas_handle_thickness"
	SmoothZoomKey      = "canvas_smooth_zoom"

	OutputDirKey    = "output_dir"
	JPEGQualityKey  = "jpeg_quality"
	MaxBatchSizeKey = "max_batch_size"

	FaceCheckEnabledKey = "face_check_enabled"
	FaceCascadePathKey  = "face_cascade_path"
)

// Defaults.
const (
	DefaultTheme           = "System"
	DefaultImageModel      = "gemini-2.5-flash-image"
	DefaultVideoModel      = "veo-2.0-generate-001"
	DefaultAPIBaseURL      = "https://generativelanguage.googleapis.com/v1beta"
	DefaultRequestInterval = 1000
	DefaultFitMargin       = 40.0
	DefaultZoomStep        = 1.1
	DefaultHandleThickness = 12.0
	DefaultJPEGQuality     = 92
	DefaultMaxBatchSize    = 20
)

// ThemeOptions lists the selectable themes.
var ThemeOptions = []string{"System", "Light", "Dark"}

// AppConfig holds the application-wide configuration
type AppConfig struct {
	prefs fyne.Preferences
}

// NewAppConfig creates a new AppConfig instance
func NewAppConfig(p fyne.Preferences) *AppConfig {
	return &AppConfig{prefs: p}
}

// Preferences exposes the underlying store.
func (c *AppConfig) Preferences() fyne.Preferences {
	return c.prefs
}

// GetAppNotificationsEnabled returns whether system notifications are enabled
func (c *AppConfig) GetAppNotificationsEnabled() bool {
	return c.prefs.BoolWithFallback(AppNotificationsEnabledKey, true)
}

// SetAppNotificationsEnabled sets whether system notifications are enabled
func (c *AppConfig) SetAppNotificationsEnabled(enabled bool) {
	c.prefs.SetBool(AppNotificationsEnabledKey, enabled)
}

// GetUpdateCheckEnabled returns whether the application should check for updates
func (c *AppConfig) GetUpdateCheckEnabled() bool {
	return c.prefs.BoolWithFallback(AppUpdateCheckEnabledKey, true)
}

// SetUpdateCheckEnabled sets whether the application should check for updates
func (c *AppConfig) SetUpdateCheckEnabled(enabled bool) {
	c.prefs.SetBool(AppUpdateCheckEnabledKey, enabled)
}

// GetTheme returns the current application theme
func (c *AppConfig) GetTheme() string {
	return c.prefs.StringWithFallback(AppThemeKey, DefaultTheme)
}

// SetTheme sets the application theme
func (c *AppConfig) SetTheme(theme string) {
	c.prefs.SetString(AppThemeKey, theme)
}

// GetImageModel returns the model used for image generation and editing.
func (c *AppConfig) GetImageModel() string {
	return c.stringOr(ImageModelKey, DefaultImageModel)
}

// SetImageModel sets the image model.
func (c *AppConfig) SetImageModel(model string) {
	c.prefs.SetString(ImageModelKey, model)
}

// GetVideoModel returns the model used for video generation.
func (c *AppConfig) GetVideoModel() string {
	return c.stringOr(VideoModelKey, DefaultVideoModel)
}

// SetVideoModel sets the video model.
func (c *AppConfig) SetVideoModel(model string) {
	c.prefs.SetString(VideoModelKey, model)
}

// GetAPIBaseURL returns the base URL of the generative API.
func (c *AppConfig) GetAPIBaseURL() string {
	return c.stringOr(APIBaseURLKey, DefaultAPIBaseURL)
}

// SetAPIBaseURL sets the API base URL.
func (c *AppConfig) SetAPIBaseURL(url string) {
	c.prefs.SetString(APIBaseURLKey, url)
}

// GetRequestInterval returns the minimum spacing between API requests in milliseconds.
func (c *AppConfig) GetRequestInterval() int {
	v := c.prefs.IntWithFallback(RequestIntervalKey, DefaultRequestInterval)
	if v < 0 {
		return 0
	}
	return v
}

// SetRequestInterval sets the request spacing in milliseconds.
func (c *AppConfig) SetRequestInterval(ms int) {
	c.prefs.SetInt(RequestIntervalKey, ms)
}

// GetFitMargin returns the inset kept around the image when fitting the expansion canvas.
func (c *AppConfig) GetFitMargin() float64 {
	v := c.prefs.FloatWithFallback(FitMarginKey, DefaultFitMargin)
	if v < 0 || math.IsNaN(v) {
		return DefaultFitMargin
	}
	return v
}

// SetFitMargin sets the fit margin.
func (c *AppConfig) SetFitMargin(margin float64) {
	c.prefs.SetFloat(FitMarginKey, margin)
}

// GetZoomStep returns the factor applied per zoom step. Values not above 1 fall back to the default.
func (c *AppConfig) GetZoomStep() float64 {
	v := c.prefs.FloatWithFallback(ZoomStepKey, DefaultZoomStep)
	if v <= 1 || math.IsNaN(v) {
		return DefaultZoomStep
	}
	return v
}

// SetZoomStep sets the zoom step.
func (c *AppConfig) SetZoomStep(step float64) {
	c.prefs.SetFloat(ZoomStepKey, step)
}

// GetHandleThickness returns the on-screen thickness of the expansion handles.
func (c *AppConfig) GetHandleThickness() float64 {
	return c.positiveFloat(HandleThicknessKey, DefaultHandleThickness)
}

// SetHandleThickness sets the handle thickness.
func (c *AppConfig) SetHandleThickness(px float64) {
	c.prefs.SetFloat(HandleThicknessKey, px)
}

// GetSmoothZoom returns whether wheel zoom follows the scroll distance.
func (c *AppConfig) GetSmoothZoom() bool {
	return c.prefs.BoolWithFallback(SmoothZoomKey, false)
}

// SetSmoothZoom sets smooth wheel zoom.
func (c *AppConfig) SetSmoothZoom(enabled bool) {
	c.prefs.SetBool(SmoothZoomKey, enabled)
}

// GetOutputDir returns where results are saved.
func (c *AppConfig) GetOutputDir() string {
	return c.stringOr(OutputDirKey, DefaultOutputDir())
}

// SetOutputDir sets the output directory.
func (c *AppConfig) SetOutputDir(dir string) {
	c.prefs.SetString(OutputDirKey, dir)
}

// GetJPEGQuality returns the JPEG encoder quality, clamped to 1..100.
func (c *AppConfig) GetJPEGQuality() int {
	q := c.prefs.IntWithFallback(JPEGQualityKey, DefaultJPEGQuality)
	switch {
	case q < 1:
		return 1
	case q > 100:
		return 100
	}
	return q
}

// SetJPEGQuality sets the JPEG quality.
func (c *AppConfig) SetJPEGQuality(q int) {
	c.prefs.SetInt(JPEGQualityKey, q)
}

// GetMaxBatchSize returns how many files one batch may contain.
func (c *AppConfig) GetMaxBatchSize() int {
	n := c.prefs.IntWithFallback(MaxBatchSizeKey, DefaultMaxBatchSize)
	if n < 1 {
		return DefaultMaxBatchSize
	}
	return n
}

// SetMaxBatchSize sets the batch limit.
func (c *AppConfig) SetMaxBatchSize(n int) {
	c.prefs.SetInt(MaxBatchSizeKey, n)
}

// GetFaceCheckEnabled returns whether face tools verify a face is present before submitting.
func (c *AppConfig) GetFaceCheckEnabled() bool {
	return c.prefs.BoolWithFallback(FaceCheckEnabledKey, false)
}

// SetFaceCheckEnabled sets the face check.
func (c *AppConfig) SetFaceCheckEnabled(enabled bool) {
	c.prefs.SetBool(FaceCheckEnabledKey, enabled)
}

// GetFaceCascadePath returns the path of a pigo cascade file. Empty disables face checks.
func (c *AppConfig) GetFaceCascadePath() string {
	return c.prefs.StringWithFallback(FaceCascadePathKey, "")
}

// SetFaceCascadePath sets the cascade path.
func (c *AppConfig) SetFaceCascadePath(path string) {
	c.prefs.SetString(FaceCascadePathKey, path)
}

func (c *AppConfig) stringOr(key, fallback string) string {
	if v := c.prefs.StringWithFallback(key, fallback); v != "" {
		return v
	}
	return fallback
}

func (c *AppConfig) positiveFloat(key string, fallback float64) float64 {
	v := c.prefs.FloatWithFallback(key, fallback)
	if v <= 0 || math.IsNaN(v) {
		return fallback
	}
	return v
}
