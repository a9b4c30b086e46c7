// Command vj is a CLI client for the Vibe Journal service.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	u "github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/and161185/vibe-journal/internal/app"
	"github.com/and161185/vibe-journal/internal/client"
	"github.com/and161185/vibe-journal/internal/insight"
	"github.com/and161185/vibe-journal/internal/model"
)

var moodEmojis = map[model.Mood]string{
	model.MoodHappy:   "✨",
	model.MoodSad:     "🌧️",
	model.MoodNeutral: "😐",
	model.MoodAngry:   "🤬",
	model.MoodExcited: "🔥",
	model.MoodTired:   "😴",
	model.MoodChill:   "🌊",
}

// stdinConfirmer asks y/N on the terminal before destructive actions.
type stdinConfirmer struct{}

func (stdinConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func usage() {
	fmt.Fprintf(os.Stderr, `vj CLI
Usage:
  vj -addr URL [-v] <cmd> [args]

Commands:
  version
  register  -e <email> -n <name> -p <password>
  login     -e <email> -p <password>               (saves token)
  logout
  whoami
  list      [-tag <tag>]
  new       -title <t> -content <c> [-mood <m>] [-tags a,b]
  edit      -id <uuid> [-title <t>] [-content <c>] [-mood <m>] [-tags a,b]
  rm        -id <uuid>                             (asks for confirmation)
  vibe      -id <uuid> [-save]                     (needs GEMINI_API_KEY)

Moods: happy sad neutral angry excited tired chill
`)
	os.Exit(2)
}

var (
	version   = "dev"
	buildDate = "unknown"
)

// main dispatches subcommands against the view-state machine.
func main() {
	// global flags
	addr := flag.String("addr", "http://localhost:8080", "server base URL")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)

	logger := zap.NewNop()
	if *verbose {
		logger, _ = zap.NewDevelopment()
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cl := client.New(*addr, logger)
	a := app.New(cl, cl, stdinConfirmer{}, logger)

	switch cmd {

	case "version":
		fmt.Printf("vj %s (%s)\n", version, buildDate)

	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		email := fs.String("e", "", "email")
		name := fs.String("n", "", "display name")
		pass := fs.String("p", "", "password")
		_ = fs.Parse(flag.Args()[1:])
		if *email == "" || *pass == "" {
			fmt.Fprintln(os.Stderr, "need -e and -p")
			os.Exit(1)
		}
		if err := a.Register(ctx, *email, *name, *pass); err != nil {
			fail(err)
		}
		// registration does not open a session
		fmt.Printf("registered; now run: vj login -e %s -p <password>\n", *email)

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("e", "", "email")
		pass := fs.String("p", "", "password")
		_ = fs.Parse(flag.Args()[1:])
		if *email == "" || *pass == "" {
			fmt.Fprintln(os.Stderr, "need -e and -p")
			os.Exit(1)
		}
		if err := a.Login(ctx, *email, *pass); err != nil {
			fail(err)
		}
		greet(a)

	case "logout":
		a.Logout(ctx)
		fmt.Println("logged out")

	case "whoami":
		mustStartup(ctx, a)
		greet(a)

	case "list":
		fs := flag.NewFlagSet("list", flag.ExitOnError)
		tag := fs.String("tag", "", "show only entries carrying this tag")
		_ = fs.Parse(flag.Args()[1:])

		mustStartup(ctx, a)
		if *tag != "" {
			a.SetFilter(*tag)
		}
		shown := a.Displayed()
		if len(shown) == 0 {
			fmt.Println("no entries")
			return
		}
		for _, e := range shown {
			renderEntry(e)
		}

	case "new":
		fs := flag.NewFlagSet("new", flag.ExitOnError)
		title := fs.String("title", "", "entry title")
		content := fs.String("content", "", "entry text ('-'=stdin)")
		mood := fs.String("mood", string(model.MoodNeutral), "mood")
		tags := fs.String("tags", "", "comma-separated tags")
		_ = fs.Parse(flag.Args()[1:])

		mustStartup(ctx, a)
		a.BeginCreate()
		draft := model.JournalEntry{
			Title:   *title,
			Content: readContent(*content),
			Mood:    model.Mood(*mood),
			Tags:    splitTags(*tags),
		}
		saved, err := a.Save(ctx, draft)
		if err != nil {
			fail(err)
		}
		if !saved {
			fmt.Fprintln(os.Stderr, "nothing to save: title and content must be non-empty")
			os.Exit(1)
		}
		renderEntry(a.Entries()[0])

	case "edit":
		fs := flag.NewFlagSet("edit", flag.ExitOnError)
		id := fs.String("id", "", "entry id (uuid)")
		title := fs.String("title", "", "new title")
		content := fs.String("content", "", "new text ('-'=stdin)")
		mood := fs.String("mood", "", "new mood")
		tags := fs.String("tags", "", "comma-separated tags (replaces)")
		_ = fs.Parse(flag.Args()[1:])
		entryID := mustID(*id)

		mustStartup(ctx, a)
		if err := a.BeginEdit(entryID); err != nil {
			fail(err)
		}
		draft := *a.Selected()
		if *title != "" {
			draft.Title = *title
		}
		if *content != "" {
			draft.Content = readContent(*content)
		}
		if *mood != "" {
			draft.Mood = model.Mood(*mood)
		}
		if *tags != "" {
			draft.Tags = splitTags(*tags)
		}
		if _, err := a.Save(ctx, draft); err != nil {
			fail(err)
		}
		for _, e := range a.Entries() {
			if e.ID == entryID {
				renderEntry(e)
			}
		}

	case "rm":
		fs := flag.NewFlagSet("rm", flag.ExitOnError)
		id := fs.String("id", "", "entry id (uuid)")
		_ = fs.Parse(flag.Args()[1:])
		entryID := mustID(*id)

		mustStartup(ctx, a)
		removed, err := a.Delete(ctx, entryID)
		if err != nil {
			fail(err)
		}
		if !removed {
			fmt.Println("kept")
			return
		}
		fmt.Println("deleted")

	case "vibe":
		fs := flag.NewFlagSet("vibe", flag.ExitOnError)
		id := fs.String("id", "", "entry id (uuid)")
		save := fs.Bool("save", false, "store the insight on the entry")
		_ = fs.Parse(flag.Args()[1:])
		entryID := mustID(*id)

		mustStartup(ctx, a)
		if err := a.BeginEdit(entryID); err != nil {
			fail(err)
		}
		entry := *a.Selected()

		gen := insight.NewGemini(os.Getenv("GEMINI_API_KEY"), logger)
		text := gen.VibeCheck(ctx, entry.Content)
		fmt.Println(text)

		// generating never mutates stored state; -save re-saves explicitly
		if *save {
			entry.Insight = text
			if _, err := a.Save(ctx, entry); err != nil {
				fail(err)
			}
		}

	default:
		usage()
	}
}

// ---- helpers ----

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func mustStartup(ctx context.Context, a *app.App) {
	if err := a.Startup(ctx); err != nil {
		fail(err)
	}
	if a.User() == nil {
		fmt.Fprintln(os.Stderr, "not logged in (run: vj login)")
		os.Exit(1)
	}
}

func mustID(s string) u.UUID {
	if s == "" {
		fmt.Fprintln(os.Stderr, "need -id")
		os.Exit(1)
	}
	id, err := u.FromString(s)
	if err != nil {
		fail(fmt.Errorf("bad id: %w", err))
	}
	return id
}

func greet(a *app.App) {
	usr := a.User()
	fmt.Printf("hey %s <%s>\n", usr.Name, usr.Email)
	fmt.Printf("You have %d entries recorded.\n", len(a.Entries()))
}

func renderEntry(e model.JournalEntry) {
	fmt.Printf("%s %s  %s\n", moodEmojis[e.Mood], e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Title)
	fmt.Printf("  id: %s\n", e.ID)
	if len(e.Tags) > 0 {
		fmt.Printf("  tags: %s\n", strings.Join(e.Tags, ", "))
	}
	fmt.Printf("  %s\n", e.Content)
	if e.Insight != "" {
		fmt.Printf("  vibe check: %s\n", e.Insight)
	}
}

func readContent(s string) string {
	if s != "-" {
		return s
	}
	sc := bufio.NewScanner(os.Stdin)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	var sb strings.Builder
	for sc.Scan() {
		sb.WriteString(sc.Text())
		sb.WriteByte('\n')
	}
	return strings.TrimRight(sb.String(), "\n")
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return model.NormalizeTags(out)
}
