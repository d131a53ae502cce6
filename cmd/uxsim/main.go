// Command uxsim runs the interaction core against an SDL window, standing
// in for the device hardware during development.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/reardencode/firmware/pkg/ux"
	"github.com/reardencode/firmware/pkg/ux/display"
	"github.com/reardencode/firmware/pkg/ux/keypad"
	"github.com/reardencode/firmware/pkg/ux/platform"
	"github.com/reardencode/firmware/pkg/ux/settings"
)

var (
	flagPlatform     string
	flagSettings     string
	flagFont         string
	flagFontSize     int
	flagLogPath      string
	flagLogLevel     string
	flagTranslations string
)

var rootCmd = &cobra.Command{
	Use:   "uxsim",
	Short: "Simulate the device interaction core in an SDL window",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&flagPlatform, "platform", "compact", "device variant: compact or qwerty")
	rootCmd.Flags().StringVar(&flagSettings, "settings", "uxsim-settings.toml", "settings file path")
	rootCmd.Flags().StringVar(&flagFont, "font", "/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf", "monospace TTF font")
	rootCmd.Flags().IntVar(&flagFontSize, "font-size", 24, "font point size")
	rootCmd.Flags().StringVar(&flagLogPath, "log", "", "write the JSON log to this file as well as stdout")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "debug, info, warn, or error")
	rootCmd.Flags().StringVar(&flagTranslations, "translations", "", "extra i18n message file (toml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "uxsim: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if flagLogPath != "" {
		ux.SetLogPath(flagLogPath)
	}
	ux.SetRawLogLevel(flagLogLevel)
	log := ux.GetLogger()

	var profile platform.Profile
	switch flagPlatform {
	case "compact":
		profile = platform.Compact
	case "qwerty":
		profile = platform.Qwerty
	default:
		return fmt.Errorf("unknown platform %q", flagPlatform)
	}

	if flagTranslations != "" {
		if err := ux.LoadTranslations(flagTranslations); err != nil {
			return fmt.Errorf("load translations: %w", err)
		}
	}

	store, err := settings.Open(flagSettings)
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}

	disp, err := display.NewSDL(display.SDLOptions{
		Title:    "uxsim",
		FontPath: flagFont,
		FontSize: flagFontSize,
		Profile:  profile,
	})
	if err != nil {
		return err
	}
	defer disp.Close()

	q := keypad.NewQueue(0)
	c := ux.New(q, disp, store, profile)
	c.Stack.Reset(mainMenu(c))

	go c.Interact()
	startWatchdog(c)

	log.Info("simulator ready", "platform", profile.Name)

	// SDL wants the event loop on the main goroutine; returns on window close
	disp.PumpEvents(q, display.SimKeymap())
	return nil
}

// startWatchdog runs the idle watchdog for one login session. Logging back
// in after a timeout starts the next session's watchdog.
func startWatchdog(c *ux.Context) {
	var logout func()
	logout = func() {
		c.AbortAndGoto(&ux.StoryScreen{
			Ctx:  c,
			Body: ux.InlineText("You were logged out\nafter inactivity.\n\nOK to log in again."),
			Opts: ux.StoryOptions{Title: "Logged Out"},
			OnDone: func(keypad.Key) {
				c.Stack.Reset(mainMenu(c))
				go ux.NewWatchdog(c, logout).Run()
			},
		})
	}
	go ux.NewWatchdog(c, logout).Run()
}

func mainMenu(c *ux.Context) *ux.Menu {
	return ux.NewMenu(c, []ux.Item{
		{Label: "About", Func: pushStory("About", strings.Join([]string{
			"Interaction core simulator.",
			"",
			"Scroll: 5/8 line, 7/9 page,",
			"0 home. OK or X to leave.",
		}, "\n"), false)},
		{Label: "Long Story", Func: pushStory("Long Story", longStory(), false)},
		{Label: "Seed Words", Func: pushStory("Seed Words",
			"romance wink lottery autumn shop bring dawn tongue range crater truth ability", true)},
		{Label: "Confirm Demo", Func: confirmDemo},
		{Label: "Settings", Menu: []ux.Item{
			{Label: "Idle Timeout", Chooser: idleTimeoutChooser(c)},
		}},
		{Label: "Secure Mode", Func: toggleSecure,
			Predicate: func() bool { return !c.Secure.Load() }},
		{Label: "Leave Secure Mode", Func: toggleSecure,
			Predicate: func() bool { return c.Secure.Load() }},
	})
}

func pushStory(title, body string, sensitive bool) func(*ux.Context, int, *ux.Item) error {
	return func(c *ux.Context, _ int, _ *ux.Item) error {
		c.Stack.Push(&ux.StoryScreen{
			Ctx:  c,
			Body: ux.InlineText(body),
			Opts: ux.StoryOptions{Title: title, Sensitive: sensitive},
		})
		return nil
	}
}

func confirmDemo(c *ux.Context, _ int, _ *ux.Item) error {
	ok, err := c.Confirm("Erase the simulated seed?\n\nOK to continue, X to abort.")
	if err != nil {
		return err
	}
	if !ok {
		return c.ShowAborted()
	}
	return c.DramaticPause("Erasing...", 2*time.Second)
}

func toggleSecure(c *ux.Context, _ int, _ *ux.Item) error {
	c.Secure.Toggle()
	ux.GetLogger().Info("secure mode toggled", "active", c.Secure.Load())
	return nil
}

var idleTimeouts = []struct {
	label string
	secs  int64
}{
	{"Never", 0},
	{" 1 minute", 60},
	{" 5 minutes", 300},
	{" 1 hour", 3600},
	{" 4 hours", 14400},
}

func idleTimeoutChooser(c *ux.Context) func() (int, []string, func(int, string)) {
	return func() (int, []string, func(int, string)) {
		cur := c.Settings.Get(ux.IdleTimeoutSetting, 14400)
		selected := 0
		labels := make([]string, len(idleTimeouts))
		for i, t := range idleTimeouts {
			labels[i] = t.label
			if t.secs == cur {
				selected = i
			}
		}
		return selected, labels, func(i int, _ string) {
			c.Settings.Set(ux.IdleTimeoutSetting, idleTimeouts[i].secs)
			if err := c.Settings.Save(); err != nil {
				ux.GetLogger().Error("save settings", "error", err)
			}
		}
	}
}

// longStory pads out enough text to exercise paging and the end key.
func longStory() string {
	var b strings.Builder
	for i := 1; i <= 40; i++ {
		fmt.Fprintf(&b, "Line %d of a story long enough that it has to wrap and scroll.\n", i)
	}
	return b.String()
}
