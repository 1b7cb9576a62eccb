// Package report renders the final slide bundle from a narrative context.
// Three deterministic tone packs ship with the binary; an externally
// generated bundle (the remote narrator) uses the same shape with a
// different Source tag so consumers can tell the variants apart.
package report

import (
	"fmt"

	"github.com/chatwrapped/cli/pkg/stats"
)

// Tone selects a template pack.
type Tone string

const (
	ToneRoast     Tone = "roast"
	ToneCorporate Tone = "corporate"
	ToneWholesome Tone = "wholesome"

	// ToneAI is resolved at the CLI layer: it selects the remote narrator
	// and falls back to ToneRoast when generation fails. It never reaches
	// Render.
	ToneAI Tone = "ai"
)

// Source records who produced a bundle.
type Source string

const (
	SourceTemplate Source = "template"
	SourceNarrator Source = "narrator"
)

// Grade is one report-card line.
type Grade struct {
	Subject string `json:"subject" yaml:"subject"`
	Grade   string `json:"grade" yaml:"grade"`
}

// ReportCard is the closing slide: per-subject letter grades, an overall
// GPA on the 4.3 scale and a sign-off note.
type ReportCard struct {
	GPA           string  `json:"gpa" yaml:"gpa"`
	Grades        []Grade `json:"grades" yaml:"grades"`
	PrincipalNote string  `json:"principal_note" yaml:"principal_note"`
	Title         string  `json:"title" yaml:"title"`
}

// Bundle is one fully rendered report.
type Bundle struct {
	Source     Source     `json:"source" yaml:"source"`
	Intro      string     `json:"intro" yaml:"intro"`
	Yapper     string     `json:"yapper" yaml:"yapper"`
	Timeline   string     `json:"timeline" yaml:"timeline"`
	NightOwl   string     `json:"night_owl" yaml:"night_owl"`
	Drama      string     `json:"drama" yaml:"drama"`
	Closing    string     `json:"closing" yaml:"closing"`
	ReportCard ReportCard `json:"report_card" yaml:"report_card"`
}

// Template is one tone pack: pure slide functions over the narrative
// context.
type Template struct {
	ID       Tone
	Tone     string
	Intro    func(stats.NarrativeContext) string
	Yapper   func(stats.NarrativeContext) string
	Timeline func(stats.NarrativeContext) string
	NightOwl func(stats.NarrativeContext) string
	Drama    func(stats.NarrativeContext) string
	Closing  func(stats.NarrativeContext) string
	Card     func(stats.NarrativeContext) ReportCard
}

var templates = map[Tone]*Template{
	ToneRoast:     roastTemplate,
	ToneCorporate: corporateTemplate,
	ToneWholesome: wholesomeTemplate,
}

// Tones lists the template tones Render accepts.
func Tones() []Tone {
	return []Tone{ToneRoast, ToneCorporate, ToneWholesome}
}

// Render produces the deterministic bundle for tone. It never consults the
// narrator; ToneAI and unknown tones are rejected.
func Render(tone Tone, ctx stats.NarrativeContext) (*Bundle, error) {
	tmpl, ok := templates[tone]
	if !ok {
		return nil, fmt.Errorf("no template for tone %q", tone)
	}

	return &Bundle{
		Source:     SourceTemplate,
		Intro:      tmpl.Intro(ctx),
		Yapper:     tmpl.Yapper(ctx),
		Timeline:   tmpl.Timeline(ctx),
		NightOwl:   tmpl.NightOwl(ctx),
		Drama:      tmpl.Drama(ctx),
		Closing:    tmpl.Closing(ctx),
		ReportCard: tmpl.Card(ctx),
	}, nil
}
