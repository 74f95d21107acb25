// Command sanad validates Quranic quotations against a reference corpus.
// It checks single quotes, scans documents for unmarked quotations, and
// corrects tagged quotes in LLM output.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/tartil-labs/sanad/core/corpus"
	"github.com/tartil-labs/sanad/core/index"
	"github.com/tartil-labs/sanad/core/llm"
	"github.com/tartil-labs/sanad/core/matcher"
	"github.com/tartil-labs/sanad/core/quran"
	"github.com/tartil-labs/sanad/internal/api"
	"github.com/tartil-labs/sanad/internal/logging"
)

const version = "1.0.0"

// CLI defines the command-line interface for sanad.
var CLI struct {
	// Global flags
	Corpus    string  `name:"corpus" short:"c" help:"Corpus directory or SQLite database path" default:"data" type:"path"`
	Verified  bool    `help:"Verify the corpus manifest before loading"`
	Threshold float64 `help:"Fuzzy match confidence threshold" default:"0.85"`
	LogLevel  string  `help:"Log level" enum:"debug,info,warn,error" default:"info"`
	LogFormat string  `help:"Log format" enum:"text,json" default:"text"`

	Validate ValidateCmd `cmd:"" help:"Validate a single quotation"`
	Detect   DetectCmd   `cmd:"" help:"Detect and validate quotations in free text"`
	Process  ProcessCmd  `cmd:"" help:"Process tagged LLM output, correcting misquotes"`
	Check    CheckCmd    `cmd:"" help:"Quick validity summary for a document"`
	Search   SearchCmd   `cmd:"" help:"Search the corpus for similar verses"`
	Verse    VerseCmd    `cmd:"" help:"Look up a verse or verse range by reference"`
	Surahs   SurahsCmd   `cmd:"" help:"List surahs or show one surah's verses"`
	Prompt   PromptCmd   `cmd:"" help:"Print the system prompt for a tag format"`
	Serve    ServeCmd    `cmd:"" help:"Start the REST API server"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

func initLogging() {
	level := logging.LevelInfo
	switch CLI.LogLevel {
	case "debug":
		level = logging.LevelDebug
	case "warn":
		level = logging.LevelWarn
	case "error":
		level = logging.LevelError
	}
	format := logging.FormatText
	if CLI.LogFormat == "json" {
		format = logging.FormatJSON
	}
	logging.InitLogger(level, format)
}

// loadMatcher loads the corpus named by the global flags and builds a
// matcher around it.
func loadMatcher() (*matcher.Matcher, error) {
	var (
		c   *quran.Corpus
		err error
	)
	source := CLI.Corpus
	switch {
	case strings.HasSuffix(source, ".db") || strings.HasSuffix(source, ".sqlite"):
		c, err = corpus.LoadSQLite(source)
	case CLI.Verified:
		c, err = corpus.LoadDirVerified(source)
	default:
		c, err = corpus.LoadDir(source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	logging.CorpusLoaded(source, len(c.Verses), len(c.Surahs))

	ix, err := index.Build(c)
	if err != nil {
		return nil, fmt.Errorf("failed to index corpus: %w", err)
	}

	cfg := matcher.DefaultConfig()
	cfg.FuzzyThreshold = CLI.Threshold
	m, err := matcher.New(ix, cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid matcher configuration: %w", err)
	}
	return m, nil
}

// readInput returns text from the argument, the file, or stdin, in that
// order of preference.
func readInput(text, file string) (string, error) {
	if text != "" {
		return text, nil
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// ValidateCmd validates a single quotation against the corpus.
type ValidateCmd struct {
	Text string `arg:"" optional:"" help:"Quotation text (reads stdin when omitted)"`
	JSON bool   `help:"Output as JSON"`
}

func (c *ValidateCmd) Run() error {
	m, err := loadMatcher()
	if err != nil {
		return err
	}
	text, err := readInput(c.Text, "")
	if err != nil {
		return err
	}

	res := m.Validate(strings.TrimSpace(text))
	logging.QuoteValidated(string(res.MatchType), res.Confidence, res.Reference())

	if c.JSON {
		return printJSON(res)
	}

	fmt.Printf("Match: %s (confidence %.3f)\n", res.MatchType, res.Confidence)
	if res.Ref != nil {
		fmt.Printf("Reference: %s\n", res.Reference())
	}
	if res.MatchedVerse != nil {
		fmt.Printf("Verse: %s\n", res.MatchedVerse.Text)
	}
	for _, d := range res.Differences {
		fmt.Printf("  diff [%s] at word %d: %q -> %q\n", d.Op, d.Position, d.Input, d.Correct)
	}
	if len(res.Suggestions) > 0 {
		fmt.Println("Did you mean:")
		for _, s := range res.Suggestions {
			fmt.Printf("  %d:%d (%.3f) %s\n", s.Verse.Surah, s.Verse.Ayah, s.Confidence, s.Verse.Text)
		}
	}
	if !res.IsValid {
		return fmt.Errorf("quotation is not valid")
	}
	return nil
}

// DetectCmd scans free text for Arabic quotations and validates each.
type DetectCmd struct {
	File     string `arg:"" optional:"" help:"Input file (reads stdin when omitted)" type:"existingfile"`
	MinWords int    `help:"Minimum words for a detected quote" default:"2"`
	JSON     bool   `help:"Output as JSON"`
}

func (c *DetectCmd) Run() error {
	proc, err := buildProcessor(llm.Config{
		ScanUntagged:  true,
		MinConfidence: CLI.Threshold,
		TagFormat:     llm.TagXML,
		Detect:        llm.DefaultConfig().Detect,
	}, c.MinWords)
	if err != nil {
		return err
	}
	text, err := readInput("", c.File)
	if err != nil {
		return err
	}

	res := proc.DetectAndValidate(text)
	if c.JSON {
		return printJSON(res)
	}
	printQuotes(res)
	if !res.AllValid {
		return fmt.Errorf("document contains invalid quotations")
	}
	return nil
}

// ProcessCmd validates and corrects tagged quotes in LLM output.
type ProcessCmd struct {
	File          string  `arg:"" optional:"" help:"Input file (reads stdin when omitted)" type:"existingfile"`
	Format        string  `help:"Tag format" enum:"xml,markdown,bracket" default:"xml"`
	NoCorrect     bool    `help:"Report problems without rewriting the text"`
	NoScan        bool    `help:"Skip scanning untagged text for quotes"`
	MinConfidence float64 `help:"Minimum confidence to accept a match" default:"0.85"`
	JSON          bool    `help:"Output as JSON"`
	Out           string  `short:"o" help:"Write corrected text to a file" type:"path"`
}

func (c *ProcessCmd) Run() error {
	cfg := llm.DefaultConfig()
	cfg.AutoCorrect = !c.NoCorrect
	cfg.ScanUntagged = !c.NoScan
	cfg.MinConfidence = c.MinConfidence
	cfg.TagFormat = llm.TagFormat(c.Format)

	proc, err := buildProcessor(cfg, 0)
	if err != nil {
		return err
	}
	text, err := readInput("", c.File)
	if err != nil {
		return err
	}

	res := proc.Process(text)
	corrected := 0
	for _, q := range res.Quotes {
		if q.WasCorrected {
			corrected++
		}
	}
	logging.DocumentProcessed(len(res.Quotes), corrected, res.AllValid)

	if c.JSON {
		return printJSON(res)
	}
	printQuotes(res)
	if c.Out != "" {
		if err := os.WriteFile(c.Out, []byte(res.CorrectedText), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Printf("Corrected text written to: %s\n", c.Out)
	} else if corrected > 0 {
		fmt.Println("\nCorrected text:")
		fmt.Println(res.CorrectedText)
	}
	if !res.AllValid {
		return fmt.Errorf("document contains invalid quotations")
	}
	return nil
}

// CheckCmd prints a quick validity summary without rewriting anything.
type CheckCmd struct {
	File string `arg:"" optional:"" help:"Input file (reads stdin when omitted)" type:"existingfile"`
	JSON bool   `help:"Output as JSON"`
}

func (c *CheckCmd) Run() error {
	proc, err := buildProcessor(llm.DefaultConfig(), 0)
	if err != nil {
		return err
	}
	text, err := readInput("", c.File)
	if err != nil {
		return err
	}

	summary := proc.QuickCheck(text)
	if c.JSON {
		return printJSON(summary)
	}
	if !summary.HasQuranContent {
		fmt.Println("No Quranic content found.")
		return nil
	}
	if summary.AllValid {
		fmt.Println("All quotations check out.")
		return nil
	}
	fmt.Println("Problems found:")
	for _, issue := range summary.Issues {
		fmt.Printf("  - %s\n", issue)
	}
	return fmt.Errorf("%d issue(s) found", len(summary.Issues))
}

func buildProcessor(cfg llm.Config, minWords int) (*llm.Processor, error) {
	m, err := loadMatcher()
	if err != nil {
		return nil, err
	}
	if minWords > 0 {
		cfg.Detect.MinWords = minWords
	}
	proc, err := llm.New(m, cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid processor configuration: %w", err)
	}
	return proc, nil
}

func printQuotes(res llm.Result) {
	if len(res.Quotes) == 0 {
		fmt.Println("No quotations found.")
		return
	}
	for _, q := range res.Quotes {
		status := "OK"
		if !q.IsValid {
			status = "INVALID"
		} else if q.WasCorrected {
			status = "CORRECTED"
		}
		ref := q.Validation.Reference()
		if ref == "" {
			ref = "?"
		}
		fmt.Printf("  [%s] %s %s (%.3f) %s\n", status, ref, q.Validation.MatchType, q.Validation.Confidence, q.Original)
	}
	for _, d := range res.Diagnostics {
		fmt.Printf("  [WARN] %s\n", d)
	}
}

// SearchCmd searches the corpus for verses similar to a query.
type SearchCmd struct {
	Query string `arg:"" help:"Arabic text to search for"`
	Limit int    `help:"Maximum results" default:"10"`
	JSON  bool   `help:"Output as JSON"`
}

func (c *SearchCmd) Run() error {
	m, err := loadMatcher()
	if err != nil {
		return err
	}
	results := m.Search(c.Query, c.Limit)
	if c.JSON {
		return printJSON(results)
	}
	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}
	for _, r := range results {
		fmt.Printf("  %d:%d  %s\n", r.Verse.Surah, r.Verse.Ayah, r.Verse.Text)
	}
	return nil
}

// VerseCmd looks up a verse or verse range by reference.
type VerseCmd struct {
	Ref  string `arg:"" help:"Verse reference, e.g. 1:1 or 112:1-4"`
	JSON bool   `help:"Output as JSON"`
}

func (c *VerseCmd) Run() error {
	ref, err := quran.ParseRef(c.Ref)
	if err != nil {
		return fmt.Errorf("bad reference %q: %w", c.Ref, err)
	}
	m, err := loadMatcher()
	if err != nil {
		return err
	}

	if ref.IsRange() {
		verses, err := m.GetVerseRange(ref.Surah, ref.Ayah, ref.AyahEnd)
		if err != nil {
			return err
		}
		if c.JSON {
			return printJSON(verses)
		}
		for _, v := range verses {
			fmt.Printf("%d:%d  %s\n", v.Surah, v.Ayah, v.Text)
		}
		return nil
	}

	v, err := m.GetVerse(ref.Surah, ref.Ayah)
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(v)
	}
	fmt.Printf("%d:%d  %s\n", v.Surah, v.Ayah, v.Text)
	return nil
}

// SurahsCmd lists surahs, or the verses of one surah.
type SurahsCmd struct {
	Number int  `arg:"" optional:"" help:"Surah number to show in full"`
	JSON   bool `help:"Output as JSON"`
}

func (c *SurahsCmd) Run() error {
	m, err := loadMatcher()
	if err != nil {
		return err
	}

	if c.Number == 0 {
		surahs := m.Surahs()
		if c.JSON {
			return printJSON(surahs)
		}
		fmt.Printf("%-5s %-24s %-24s %s\n", "NUM", "NAME", "ENGLISH", "VERSES")
		for _, s := range surahs {
			fmt.Printf("%-5d %-24s %-24s %d\n", s.Number, s.Name, s.EnglishName, s.VerseCount)
		}
		return nil
	}

	surah, err := m.Surah(c.Number)
	if err != nil {
		return err
	}
	verses := m.SurahVerses(c.Number)
	if c.JSON {
		return printJSON(map[string]interface{}{"surah": surah, "verses": verses})
	}
	fmt.Printf("%d. %s (%s), %d verses\n\n", surah.Number, surah.Name, surah.EnglishName, surah.VerseCount)
	for _, v := range verses {
		fmt.Printf("%d. %s\n", v.Ayah, v.Text)
	}
	return nil
}

// PromptCmd prints the system prompt instructing an LLM to tag quotes.
type PromptCmd struct {
	Format  string `arg:"" optional:"" help:"Tag format" enum:"xml,markdown,bracket,minimal" default:"xml"`
	Minimal bool   `help:"Print the short format-free prompt"`
}

func (c *PromptCmd) Run() error {
	if c.Minimal || c.Format == "minimal" {
		fmt.Println(llm.PromptMinimal)
		return nil
	}
	fmt.Println(llm.SystemPrompt(llm.TagFormat(c.Format)))
	return nil
}

// ServeCmd starts the REST API server.
type ServeCmd struct {
	Port      int      `help:"HTTP server port" default:"8080"`
	RateLimit int      `help:"Requests per minute per client (0 disables)" default:"0"`
	Burst     int      `help:"Rate limit burst size" default:"10"`
	Origins   []string `help:"Allowed CORS origins (empty allows all)"`
}

func (c *ServeCmd) Run() error {
	m, err := loadMatcher()
	if err != nil {
		return err
	}
	proc, err := llm.New(m, llm.DefaultConfig())
	if err != nil {
		return err
	}

	srv := api.NewServer(m, proc, api.Config{
		Port:              c.Port,
		RateLimitRequests: c.RateLimit,
		RateLimitBurst:    c.Burst,
		AllowedOrigins:    c.Origins,
	})
	return srv.Start()
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("sanad version %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("sanad"),
		kong.Description("Quranic quotation authentication engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	initLogging()
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
