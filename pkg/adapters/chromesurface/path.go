package chromesurface

import (
	"os"
	"os/exec"
	"runtime"
)

// ResolveChromePath resolves the Chrome executable path in the following
// order:
// 1. If explicitPath is non-empty, use it
// 2. If CHROME_PATH environment variable is set, use it
// 3. Fall back to system defaults (chromium before chrome per platform)
func ResolveChromePath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}

	if envPath := os.Getenv("CHROME_PATH"); envPath != "" {
		return envPath
	}

	return findSystemChrome()
}

func findSystemChrome() string {
	var candidates []string

	switch runtime.GOOS {
	case "darwin":
		candidates = []string{
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		}
	case "linux":
		candidates = []string{
			"chromium",
			"chromium-browser",
			"google-chrome-stable",
			"google-chrome",
		}
	case "windows":
		for _, base := range []string{os.Getenv("PROGRAMFILES"), os.Getenv("PROGRAMFILES(X86)"), os.Getenv("LOCALAPPDATA")} {
			if base == "" {
				continue
			}
			candidates = append(candidates,
				base+`\Chromium\Application\chrome.exe`,
				base+`\Google\Chrome\Application\chrome.exe`,
			)
		}
	}

	for _, candidate := range candidates {
		if path := resolveExecutable(candidate); path != "" {
			return path
		}
	}

	// Empty means not found; Open rejects the run before launching.
	return ""
}

// resolveExecutable resolves a bare command name via PATH and a full path
// via stat.
func resolveExecutable(nameOrPath string) string {
	if len(nameOrPath) > 0 && (nameOrPath[0] == '/' || (len(nameOrPath) > 1 && nameOrPath[1] == ':')) {
		if _, err := os.Stat(nameOrPath); err == nil {
			return nameOrPath
		}
		return ""
	}

	if path, err := exec.LookPath(nameOrPath); err == nil {
		return path
	}
	return ""
}
