// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package help renders the CLI help screens: the general usage text and
// per-topic detail pages describing how each family of tags is extracted.
package help

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// TopicInfo describes one extraction topic for the detailed help pages.
type TopicInfo struct {
	Name                string   // Topic name (e.g., "maiden")
	ShortDescription    string   // Short description for the topics list
	DetailedDescription string   // What the rules do and why
	Markers             []string // Marker aliases or patterns the rules match
	TagKeys             []string // Reconciled tag keys the topic produces
	ConfidenceNotes     []string // How confidence is assigned
	Examples            []string // Raw-name examples
}

// System manages help content for the application
type System struct {
	topics  map[string]TopicInfo
	noColor bool
	colors  map[string]*color.Color
}

// NewSystem creates a help system preloaded with the built-in topics
func NewSystem(noColor bool) *System {
	if noColor {
		color.NoColor = true
	}

	s := &System{
		topics:  make(map[string]TopicInfo),
		noColor: noColor,
		colors: map[string]*color.Color{
			"title":    color.New(color.FgWhite, color.Bold),
			"header":   color.New(color.FgBlue, color.Bold),
			"item":     color.New(color.FgCyan),
			"emphasis": color.New(color.FgWhite, color.Bold),
			"negative": color.New(color.FgRed),
			"example":  color.New(color.FgMagenta),
		},
	}
	for _, topic := range builtinTopics {
		s.Register(topic)
	}
	return s
}

// Register adds a topic to the system
func (h *System) Register(topic TopicInfo) {
	h.topics[strings.ToLower(topic.Name)] = topic
}

// ShowGeneralHelp displays general help information
func (h *System) ShowGeneralHelp() {
	h.colors["title"].Println("urbar-parse - Cadastral Owner Name Extraction")
	fmt.Println("=============================================")
	fmt.Println()
	h.colors["header"].Println("USAGE:")
	fmt.Println("  urbar-parse -file <path> [options]")
	fmt.Println("  urbar-parse -name '<raw owner name>'")
	fmt.Println()

	h.colors["header"].Println("OPTIONS:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  -file\t<path>\tPath to the input file, or '-' for stdin")
	fmt.Fprintln(w, "  -name\t<raw>\tParse a single raw name string and exit")
	fmt.Fprintln(w, "  -csv\t\tTreat input as CSV with a header row")
	fmt.Fprintln(w, "  -col-territory, -col-sequence, -col-list-number, -col-raw-name\t\tCSV column mapping")
	fmt.Fprintln(w, "  -territory\t<name>\tCadastral territory stamped on plain line input")
	fmt.Fprintln(w, "  -config\t<path>\tPath to configuration file (YAML)")
	fmt.Fprintln(w, "  -profile\t<name>\tProfile name to use from config file")
	fmt.Fprintln(w, "  -list-profiles\t\tList available profiles in config file")
	fmt.Fprintln(w, "  -rules\t<path>\tMarker-rules file overriding the embedded defaults (YAML)")
	fmt.Fprintln(w, "  -format\t<format>\tOutput format: text, json, csv, yaml (default: text)")
	fmt.Fprintln(w, "  -confidence\t<levels>\tTag confidence levels to display: high,medium,low,all (default: all)")
	fmt.Fprintln(w, "  -workers\t<n>\tNumber of parallel workers (default: one per CPU)")
	fmt.Fprintln(w, "  -verbose\t\tDisplay candidates, evidence spans and legacy tags per record")
	fmt.Fprintln(w, "  -show-alternatives\t\tDisplay discarded alternative values on reconciled tags")
	fmt.Fprintln(w, "  -stats\t\tPrint batch statistics to stderr after processing")
	fmt.Fprintln(w, "  -output\t<path>\tPath to output file (if not specified, output to stdout)")
	fmt.Fprintln(w, "  -debug\t\tEnable debug logging of pipeline timing")
	fmt.Fprintln(w, "  -no-color\t\tDisable colored output")
	fmt.Fprintln(w, "  -version\t\tShow version information")
	fmt.Fprintln(w, "  -help\t\tShow this help message")
	fmt.Fprintln(w, "  -help topics\t\tList the extraction topics")
	fmt.Fprintln(w, "  -help <topic>\t\tShow detailed help for one extraction topic")
	w.Flush()

	fmt.Println()
	h.colors["header"].Println("EXAMPLES:")
	h.colors["example"].Println("  urbar-parse -file records.csv -csv -format json -output parsed.json")
	h.colors["example"].Println("  urbar-parse -file names.txt -territory 'Horná Lehota' -stats")
	h.colors["example"].Println("  urbar-parse -name 'Batóová Júlia r. Szivecová, (z Várkonyu, m.Ján)' -verbose")
	h.colors["example"].Println("  urbar-parse -file records.csv -csv -profile review")

	fmt.Println()
	h.colors["header"].Println("CONFIGURATION:")
	fmt.Println("  Default config: ~/.config/urbar-parse/config.yaml")
	fmt.Println("  Project config: config.yaml, urbar.yaml or .urbar-parse.yaml (in current directory)")
	fmt.Println("  Environment: URBAR_CONFIG_DIR - Override config directory")
}

// ShowTopicsHelp lists every extraction topic
func (h *System) ShowTopicsHelp() {
	h.colors["title"].Println("Extraction Topics")
	fmt.Println("=================")
	fmt.Println()
	fmt.Println("Each topic covers one family of tags produced by the parsers:")
	fmt.Println()

	names := make([]string, 0, len(h.topics))
	for name := range h.topics {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	h.colors["header"].Fprintln(w, "  TOPIC\tDESCRIPTION")
	h.colors["header"].Fprintln(w, "  -----\t-----------")
	for _, name := range names {
		topic := h.topics[name]
		fmt.Fprintf(w, "  ")
		h.colors["emphasis"].Fprintf(w, "%s", topic.Name)
		fmt.Fprintf(w, "\t%s\n", topic.ShortDescription)
	}
	w.Flush()

	fmt.Println()
	fmt.Println("For detailed information about a topic, use:")
	h.colors["example"].Println("  urbar-parse -help <topic>")
}

// ShowTopicHelp displays detailed help for one topic. Returns false when the
// topic does not exist.
func (h *System) ShowTopicHelp(name string) bool {
	topic, exists := h.topics[strings.ToLower(name)]
	if !exists {
		h.colors["negative"].Printf("Error: topic '%s' not found.\n", name)
		fmt.Println("Use 'urbar-parse -help topics' to see the available topics.")
		return false
	}

	h.colors["title"].Printf("%s\n", topic.Name)
	fmt.Println(strings.Repeat("=", len(topic.Name)))
	fmt.Println()
	fmt.Println(topic.DetailedDescription)
	fmt.Println()

	if len(topic.Markers) > 0 {
		h.colors["header"].Println("MARKERS:")
		for _, marker := range topic.Markers {
			fmt.Print("  - ")
			h.colors["item"].Println(marker)
		}
		fmt.Println()
	}

	if len(topic.TagKeys) > 0 {
		h.colors["header"].Println("TAG KEYS:")
		for _, key := range topic.TagKeys {
			fmt.Print("  - ")
			h.colors["item"].Println(key)
		}
		fmt.Println()
	}

	if len(topic.ConfidenceNotes) > 0 {
		h.colors["header"].Println("CONFIDENCE:")
		for _, note := range topic.ConfidenceNotes {
			fmt.Printf("  - %s\n", note)
		}
		fmt.Println()
	}

	if len(topic.Examples) > 0 {
		h.colors["header"].Println("EXAMPLES:")
		for _, example := range topic.Examples {
			fmt.Print("  ")
			h.colors["example"].Println(example)
		}
	}

	return true
}

var builtinTopics = []TopicInfo{
	{
		Name:             "names",
		ShortDescription: "Surname and given name splitting",
		DetailedDescription: "The head of the raw string (before any parenthetical) is split into\n" +
			"surname and given name. The primary extractor tries, in order: a single\n" +
			"ALL-CAPS token, a feminine surname suffix (-ová, -ná), exactly one\n" +
			"dictionary-known given name, then the positional 'Surname Given'\n" +
			"convention. The legacy tagger runs its own older fallback order, and\n" +
			"disagreements surface as conflicts.",
		TagKeys: []string{"priezvisko", "meno", "dodatok", "dodatok_rimsky"},
		ConfidenceNotes: []string{
			"0.85 when the dictionary decides the split",
			"0.8 for the ALL-CAPS and feminine-suffix rules",
			"0.6 for the positional fallback, 0.4 for a lone token",
		},
		Examples: []string{
			"urbar-parse -name 'JAROŠ Štefan'",
			"urbar-parse -name 'Novák Ján ml.'",
		},
	},
	{
		Name:             "maiden",
		ShortDescription: "Maiden surname markers (rodená, rod., r.)",
		DetailedDescription: "A maiden-surname marker anywhere in the record captures the following\n" +
			"capitalized token as the surname before marriage. Two markers with\n" +
			"different values raise a CONFLICT_MAIDEN parse error and demote both.",
		Markers: []string{"rodená", "rodena", "rozená", "rod.", "roz.", "r."},
		TagKeys: []string{"rodne_priezvisko"},
		ConfidenceNotes: []string{
			"1.0 for a single marker match",
			"0.5 and uncertain when two markers disagree",
		},
		Examples: []string{"urbar-parse -name 'Batóová Júlia r. Szivecová'"},
	},
	{
		Name:             "spouse",
		ShortDescription: "Spouse name markers (manžel, m., manželka, ž.)",
		DetailedDescription: "Husband markers capture the husband's given name (and optional surname)\n" +
			"and imply a female owner; wife markers do the reverse. The reconciler\n" +
			"prefers the legacy rules for spouse keys.",
		Markers: []string{"manžel", "muž", "m.", "manželka", "žena", "ž."},
		TagKeys: []string{"manzel_meno", "manzel_priezvisko", "pohlavie"},
		ConfidenceNotes: []string{
			"1.0 for the captured spouse name",
			"0.9 for the implied owner gender",
		},
		Examples: []string{"urbar-parse -name 'JAROŠ Štefan (ž.Marta Virdzeková)'"},
	},
	{
		Name:             "dates",
		ShortDescription: "Birth and death date classification",
		DetailedDescription: "Every d.m.yyyy token is classified by keyword proximity: a birth or\n" +
			"death keyword in a narrow window before the date decides it; a wider\n" +
			"window is tried next; an unclassified date is kept as datum. Dates are\n" +
			"normalized to ISO yyyy-mm-dd. A birth date on or after a death date\n" +
			"raises CONFLICT_DATES.",
		Markers: []string{"narodený, nar., *  (birth)", "zomrel, zomrela, umrel, †  (death)"},
		TagKeys: []string{"datum_narodenia", "datum_umrtia", "datum"},
		ConfidenceNotes: []string{
			"1.0 with a keyword in the narrow window",
			"0.9 with a keyword in the wide window",
			"0.7 for a date with no keyword nearby",
		},
		Examples: []string{"urbar-parse -name 'Kováč Ján (zomrel 1.2.1950)'"},
	},
	{
		Name:             "gender",
		ShortDescription: "Gender inference from markers and suffixes",
		DetailedDescription: "Exactly one gender tag is emitted per record. A husband marker or\n" +
			"feminine minor status forces female; a wife marker or masculine minor\n" +
			"status forces male; a feminine surname suffix implies female; otherwise\n" +
			"the register's historical male default applies.",
		TagKeys: []string{"pohlavie"},
		ConfidenceNotes: []string{
			"0.9 from spouse markers or minor status",
			"0.8 from the surname suffix",
			"0.6 for the default",
		},
		Examples: []string{"urbar-parse -name 'Kováčová Anna'"},
	},
	{
		Name:             "status",
		ShortDescription: "Civil status words (vdova, maloletý, ...)",
		DetailedDescription: "Status words are kept verbatim as the tag value. The minor statuses\n" +
			"(maloletý, maloletá) also set the record's minor flag and decide gender.",
		Markers: []string{"maloletý", "maloletá", "vdova", "vdovec", "rozvedený", "rozvedená", "slobodný", "slobodná"},
		TagKeys: []string{"stav"},
		ConfidenceNotes: []string{"1.0 for a status word match"},
		Examples:        []string{"urbar-parse -name 'PETRIĽAK Vasiľ (maloletý)'"},
	},
	{
		Name:             "places",
		ShortDescription: "Origin, residence and birth place markers",
		DetailedDescription: "Place markers capture the following capitalized token: origin (z, zo,\n" +
			"pochádza z), residence (bytom, trvale bytom) and birth place (narodený v).\n" +
			"The reconciler prefers the legacy rules for origin and residence.",
		Markers: []string{"z", "zo", "pochádza z", "rodák z", "bytom", "trvale bytom", "narodený v"},
		TagKeys: []string{"povod", "bydlisko", "miesto_narodenia"},
		ConfidenceNotes: []string{"1.0 for a marker match"},
		Examples:        []string{"urbar-parse -name 'Batóová Júlia (z Várkonyu)'"},
	},
	{
		Name:             "spf",
		ShortDescription: "State land fund detection",
		DetailedDescription: "Records administered by the Slovak state land fund are flagged rather\n" +
			"than parsed as personal names. The canonical fund phrase is certain; a\n" +
			"keyword in the name text or in another input column is near-certain.",
		Markers: []string{"slovenský pozemkový fond", "v správe spf", "správa spf", "spf"},
		TagKeys: []string{"spf", "spf_dovod"},
		ConfidenceNotes: []string{
			"1.0 for the canonical phrase (TEXT_MATCH)",
			"0.9 for a keyword in another input column (FIELD_MATCH)",
			"0.8 for a keyword in the name text (TEXT_MATCH)",
		},
		Examples: []string{"urbar-parse -name 'Slovenská republika - v správe SPF'"},
	},
	{
		Name:             "reconciliation",
		ShortDescription: "How the two parsers' outputs are merged",
		DetailedDescription: "The primary extractor and the legacy tagger run independently on every\n" +
			"record. Tags on the same key are compared after normalization: values\n" +
			"within the similarity threshold agree and the weighted-confidence winner\n" +
			"is kept; genuine disagreement emits a conflict with both values\n" +
			"preserved. The per-key priority table decides the weights.",
		ConfidenceNotes: []string{
			"Name, gender and date keys weight the primary extractor at 1.0",
			"Spouse, family-relation and place keys weight the legacy rules at 1.0",
			"Conflicting winners are penalized by 0.8",
		},
		Examples: []string{"urbar-parse -name 'Bartoš Xenofón' -show-alternatives"},
	},
}
