// Package settings persists presenter preferences between runs.
//
// Settings are stored as TOML, by default in
// $XDG_CONFIG_HOME/podium/settings.toml:
//
//	[overlay]
//	laser_size = 60
//	laser_opacity = 128
//	laser_color = "#ff0000"
//	magnifier_size = 250
//	magnification = 2.0
//	pen_color = "#ff0000"
//	pen_thickness = 3.0
//	pen_style = "solid"
//
//	[view]
//	split = false
//
//	[window]
//	console_fullscreen = false
//	audience_fullscreen = true
//	aspect_lock = false
//	console_width = 1200
//	console_height = 800
//
//	[topology]
//	audience = "HDMI-1@1920x1080+1920+0"
//	console = "eDP-1@1920x1080+0+0"
//
//	[clock]
//	font_size = 20
//	color = "#ffffff"
//
//	[timer]
//	font_size = 28
//	color = "#ffffff"
//
// [Store.Load] returns defaults when the file does not exist and clamps
// every value into its valid range, so a hand-edited file never produces
// an unusable pointer or lens. [Store.Save] writes the file at shutdown.
package settings
