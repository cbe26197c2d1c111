// Package main provides localization for the sketchcast CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Render parameterized sketches as animated videos": "パラメータ化されたスケッチをアニメーション動画としてレンダリング",

		// Render command
		"Render a sketch file as an animated video": "スケッチファイルをアニメーション動画としてレンダリング",
	})
}
