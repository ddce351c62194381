// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"urbar-parse/internal/core"
	"urbar-parse/internal/formatters"
	"urbar-parse/internal/formatters/shared"
	"urbar-parse/internal/record"

	"github.com/fatih/color"
)

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":   color.New(color.FgGreen),
			"yellow":  color.New(color.FgYellow),
			"red":     color.New(color.FgRed),
			"cyan":    color.New(color.FgCyan),
			"magenta": color.New(color.FgMagenta),
			"blue":    color.New(color.FgBlue),
			"white":   color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(results []*core.Result, options formatters.FormatterOptions) (string, error) {
	if options.NoColor {
		color.NoColor = true
	}

	if len(results) == 0 {
		return "No records processed.", nil
	}

	var builder strings.Builder

	if !options.Verbose {
		f.appendHeaders(&builder, options)
	}

	for _, res := range results {
		if res == nil {
			continue
		}
		if options.Verbose {
			f.appendDetailedRecord(&builder, res, options)
		} else {
			f.appendSummaryLine(&builder, res, options)
		}
	}

	return builder.String(), nil
}

// appendHeaders adds column headers to the string builder
func (f *Formatter) appendHeaders(builder *strings.Builder, options formatters.FormatterOptions) {
	headerStr := fmt.Sprintf("%-8s %-7s %-8s %-6s %-5s %s\n",
		"LEVEL", "SCORE", "GENDER", "TAGS", "CONF", "NAME")
	if !options.NoColor {
		headerStr = f.colors["white"].Sprintf("%-8s %-7s %-8s %-6s %-5s %s\n",
			"LEVEL", "SCORE", "GENDER", "TAGS", "CONF", "NAME")
	}
	builder.WriteString(headerStr)

	separator := strings.Repeat("-", 78) + "\n"
	if !options.NoColor {
		separator = f.colors["white"].Sprint(strings.Repeat("-", 78) + "\n")
	}
	builder.WriteString(separator)
}

// appendSummaryLine adds a single line summary for one record
func (f *Formatter) appendSummaryLine(builder *strings.Builder, res *core.Result, options formatters.FormatterOptions) {
	level := strings.ToUpper(core.ConfidenceLevel(res.Parsed.ParseScore))
	levelColor := f.levelColor(level)

	levelStr := fmt.Sprintf("[%-6s]", level)
	if !options.NoColor {
		levelStr = levelColor.Sprintf("[%-6s]", level)
	}

	scoreStr := fmt.Sprintf("%6.2f ", res.Parsed.ParseScore)
	if !options.NoColor {
		scoreStr = f.colors["blue"].Sprintf("%6.2f ", res.Parsed.ParseScore)
	}

	gender := "-"
	if g, ok := res.Parsed.Field(record.FieldGender); ok {
		gender = g.Value
	}
	genderStr := fmt.Sprintf("%-8s", gender)
	if !options.NoColor {
		genderStr = f.colors["cyan"].Sprintf("%-8s", gender)
	}

	tags := shared.FilterTagsByConfidence(res.MergedTags, options)
	tagStr := fmt.Sprintf("%-6d", len(tags))
	if !options.NoColor {
		tagStr = f.colors["green"].Sprintf("%-6d", len(tags))
	}

	conflictStr := fmt.Sprintf("%-5d", len(res.Conflicts))
	if !options.NoColor && len(res.Conflicts) > 0 {
		conflictStr = f.colors["red"].Sprintf("%-5d", len(res.Conflicts))
	}

	name := strings.ReplaceAll(res.Record.RawName, "\n", " ")
	nameStr := name
	if !options.NoColor {
		nameStr = f.colors["white"].Sprint(name)
	}

	fmt.Fprintf(builder, "%s %s %s %s %s %s\n",
		levelStr, scoreStr, genderStr, tagStr, conflictStr, nameStr)
}

// appendDetailedRecord adds full detail for one record
func (f *Formatter) appendDetailedRecord(builder *strings.Builder, res *core.Result, options formatters.FormatterOptions) {
	if !options.NoColor {
		f.colors["white"].Fprintf(builder, "=== Record ===\n")
	} else {
		fmt.Fprintf(builder, "=== Record ===\n")
	}

	f.appendKV(builder, options, "Name", res.Record.RawName)
	if res.Record.Territory != "" {
		f.appendKV(builder, options, "Territory", res.Record.Territory)
	}
	if res.Record.SequenceNumber != nil {
		f.appendKV(builder, options, "Sequence number", fmt.Sprintf("%d", *res.Record.SequenceNumber))
	}
	if res.Record.OwnershipListNumber != nil {
		f.appendKV(builder, options, "Ownership list", fmt.Sprintf("%d", *res.Record.OwnershipListNumber))
	}

	level := strings.ToUpper(core.ConfidenceLevel(res.Parsed.ParseScore))
	if !options.NoColor {
		f.colors["cyan"].Fprintf(builder, "Parse score: ")
		f.colors["white"].Fprintf(builder, "%.2f ", res.Parsed.ParseScore)
		f.levelColor(level).Fprintf(builder, "(%s)\n", level)
	} else {
		fmt.Fprintf(builder, "Parse score: %.2f (%s)\n", res.Parsed.ParseScore, level)
	}

	if len(res.Parsed.ParseErrors) > 0 {
		if !options.NoColor {
			f.colors["cyan"].Fprintf(builder, "Parse errors: ")
			f.colors["red"].Fprintf(builder, "%s\n", strings.Join(res.Parsed.ParseErrors, ", "))
		} else {
			fmt.Fprintf(builder, "Parse errors: %s\n", strings.Join(res.Parsed.ParseErrors, ", "))
		}
	}

	tags := shared.FilterTagsByConfidence(res.MergedTags, options)
	if len(tags) > 0 {
		if !options.NoColor {
			f.colors["cyan"].Fprintf(builder, "Tags:\n")
		} else {
			fmt.Fprintf(builder, "Tags:\n")
		}
		for _, tag := range tags {
			f.appendTagLine(builder, tag, options)
		}
	}

	if len(res.Conflicts) > 0 {
		if !options.NoColor {
			f.colors["red"].Fprintf(builder, "Conflicts:\n")
		} else {
			fmt.Fprintf(builder, "Conflicts:\n")
		}
		for _, tag := range res.Conflicts {
			if !options.NoColor {
				fmt.Fprintf(builder, "- %s: ", tag.Key)
				f.colors["red"].Fprintf(builder, "%s\n", tag.Reasoning)
			} else {
				fmt.Fprintf(builder, "- %s: %s\n", tag.Key, tag.Reasoning)
			}
		}
	}

	if len(res.Parsed.EvidenceSpans) > 0 {
		if !options.NoColor {
			f.colors["cyan"].Fprintf(builder, "Evidence:\n")
		} else {
			fmt.Fprintf(builder, "Evidence:\n")
		}
		for _, ev := range res.Parsed.EvidenceSpans {
			fmt.Fprintf(builder, "- %s [%d:%d] %q\n", ev.Type, ev.Span.Start, ev.Span.End, ev.Text)
		}
	}

	if len(res.Parsed.Notes) > 0 {
		f.appendKV(builder, options, "Notes", strings.Join(res.Parsed.Notes, "; "))
	}
	if len(res.Parsed.UnmatchedTokens) > 0 {
		f.appendKV(builder, options, "Unmatched", strings.Join(res.Parsed.UnmatchedTokens, ", "))
	}

	fmt.Fprintln(builder)
}

// appendTagLine adds one reconciled tag line
func (f *Formatter) appendTagLine(builder *strings.Builder, tag record.MergedTag, options formatters.FormatterOptions) {
	level := strings.ToUpper(core.ConfidenceLevel(tag.Confidence))
	if !options.NoColor {
		fmt.Fprintf(builder, "- %s = ", tag.Key)
		f.colors["white"].Fprintf(builder, "%s ", tag.Value)
		f.levelColor(level).Fprintf(builder, "(%.2f, %s)", tag.Confidence, tag.Source)
		if tag.Conflict {
			f.colors["red"].Fprintf(builder, " [conflict]")
		}
		fmt.Fprintln(builder)
	} else {
		line := fmt.Sprintf("- %s = %s (%.2f, %s)", tag.Key, tag.Value, tag.Confidence, tag.Source)
		if tag.Conflict {
			line += " [conflict]"
		}
		fmt.Fprintf(builder, "%s\n", line)
	}

	if (options.ShowAlternatives || options.Verbose) && len(tag.Alternatives) > 0 {
		for _, alt := range tag.Alternatives {
			fmt.Fprintf(builder, "    alt: %s (%.2f, %s)\n", alt.Value, alt.Confidence, alt.Source)
		}
	}
}

// appendKV adds a labeled value line
func (f *Formatter) appendKV(builder *strings.Builder, options formatters.FormatterOptions, label, value string) {
	if !options.NoColor {
		f.colors["cyan"].Fprintf(builder, "%s: ", label)
		f.colors["white"].Fprintf(builder, "%s\n", value)
	} else {
		fmt.Fprintf(builder, "%s: %s\n", label, value)
	}
}

// levelColor maps a confidence level to its display color
func (f *Formatter) levelColor(level string) *color.Color {
	switch level {
	case "HIGH":
		return f.colors["green"]
	case "MEDIUM":
		return f.colors["yellow"]
	default:
		return f.colors["red"]
	}
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
