package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Rendering %d frames at %dx%d":  "%d フレームを %dx%d でレンダリング中",
		"Output saved to %s":            "出力を %s に保存しました",
		"Rendering %s...":               "%s をレンダリング中...",
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",

		// Render stage
		"Scheduling %d frames in chunks of %d": "%d フレームを %d 件ずつスケジュール中",
		"Rendered %d frames":                   "%d フレームをレンダリングしました",
		"Capture surface closed":               "キャプチャサーフェスを閉じました",

		// Failures
		"Frame capture failed: %s": "フレームキャプチャに失敗しました: %s",
		"Encoding failed: %s":      "エンコードに失敗しました: %s",
	})
}
