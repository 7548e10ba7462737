package pokemon

import "fmt"

// Summary is the list row. It is an immutable snapshot of one fetch.
type Summary struct {
	ID     string   `json:"id" yaml:"id"`
	Number string   `json:"number" yaml:"number"`
	Name   string   `json:"name" yaml:"name"`
	Image  string   `json:"image" yaml:"image"`
	Types  []string `json:"types" yaml:"types"`
}

// Range is a minimum/maximum pair as reported by the API, units included.
type Range struct {
	Minimum string `json:"minimum" yaml:"minimum"`
	Maximum string `json:"maximum" yaml:"maximum"`
}

func (r Range) String() string {
	switch {
	case r.Minimum == "" && r.Maximum == "":
		return "-"
	case r.Minimum == r.Maximum || r.Maximum == "":
		return r.Minimum
	case r.Minimum == "":
		return r.Maximum
	}
	return r.Minimum + " – " + r.Maximum
}

// Detail is the full record shown in the dialog.
type Detail struct {
	ID             string   `json:"id" yaml:"id"`
	Number         string   `json:"number" yaml:"number"`
	Name           string   `json:"name" yaml:"name"`
	Weight         Range    `json:"weight" yaml:"weight"`
	Height         Range    `json:"height" yaml:"height"`
	Classification string   `json:"classification" yaml:"classification"`
	Types          []string `json:"types" yaml:"types"`
	Resistant      []string `json:"resistant" yaml:"resistant"`
	Weaknesses     []string `json:"weaknesses" yaml:"weaknesses"`
	FleeRate       float64  `json:"fleeRate" yaml:"flee_rate"`
	MaxCP          int      `json:"maxCP" yaml:"max_cp"`
	MaxHP          int      `json:"maxHP" yaml:"max_hp"`
	Image          string   `json:"image" yaml:"image"`
}

// FleePercent renders the flee rate (a 0..1 fraction) as a percentage.
func (d Detail) FleePercent() string {
	return fmt.Sprintf("%.0f%%", d.FleeRate*100)
}

// Title is "#004 Charmander".
func (d Detail) Title() string {
	if d.Number == "" {
		return d.Name
	}
	return "#" + d.Number + " " + d.Name
}
