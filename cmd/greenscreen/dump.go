package main

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/greenscreen/internal/session"
)

// printScreen renders the character plane as a bordered grid, non-display
// cells blanked the way a terminal would show them.
func printScreen(w io.Writer, sess *session.Session) {
	buf := sess.Buffer()
	cols := buf.Cols()

	border := "+" + strings.Repeat("-", cols) + "+"
	fmt.Fprintln(w, border)
	for r := 0; r < buf.Rows(); r++ {
		var sb strings.Builder
		sb.WriteByte('|')
		for c := 0; c < cols; c++ {
			pos := r*cols + c
			ch := buf.Char(pos)
			if ch == 0 || buf.IsNonDisplay(pos) {
				ch = ' '
			}
			sb.WriteRune(ch)
		}
		sb.WriteByte('|')
		fmt.Fprintln(w, sb.String())
	}
	fmt.Fprintln(w, border)
}

// stateDump is the YAML shape of a session snapshot.
type stateDump struct {
	Session string      `yaml:"session"`
	Rows    int         `yaml:"rows"`
	Cols    int         `yaml:"cols"`
	Cursor  cursorDump  `yaml:"cursor"`
	OIA     oiaDump     `yaml:"oia"`
	Fields  []fieldDump `yaml:"fields"`
}

type cursorDump struct {
	Position int  `yaml:"position"`
	Row      int  `yaml:"row"`
	Col      int  `yaml:"col"`
	Visible  bool `yaml:"visible"`
}

type oiaDump struct {
	KeyboardLocked bool   `yaml:"keyboard_locked"`
	InsertMode     bool   `yaml:"insert_mode"`
	MessageLight   bool   `yaml:"message_light"`
	Inhibited      string `yaml:"inhibited"`
	InhibitMessage string `yaml:"inhibit_message,omitempty"`
}

type fieldDump struct {
	Start    int    `yaml:"start"`
	Length   int    `yaml:"length"`
	Shift    string `yaml:"shift"`
	Bypass   bool   `yaml:"bypass,omitempty"`
	Modified bool   `yaml:"modified,omitempty"`
	Text     string `yaml:"text"`
}

func dumpState(w io.Writer, sess *session.Session) error {
	cur := sess.Cursor()
	o := sess.OIA()
	msg, _ := o.InhibitedText()

	d := stateDump{
		Session: sess.ID().String(),
		Rows:    sess.Buffer().Rows(),
		Cols:    sess.Buffer().Cols(),
		Cursor: cursorDump{
			Position: cur.Position(),
			Row:      cur.Row(),
			Col:      cur.Col(),
			Visible:  cur.Visible(),
		},
		OIA: oiaDump{
			KeyboardLocked: o.KeyboardLocked(),
			InsertMode:     o.InsertMode(),
			MessageLight:   o.IsMessageWait(),
			Inhibited:      o.InputInhibited().String(),
			InhibitMessage: msg,
		},
	}

	tbl := sess.Fields()
	for i := 0; i < tbl.Count(); i++ {
		f := tbl.FieldAt(i)
		d.Fields = append(d.Fields, fieldDump{
			Start:    f.StartPos(),
			Length:   f.Length(),
			Shift:    f.Shift().String(),
			Bypass:   f.IsBypass(),
			Modified: f.MDT(),
			Text:     strings.TrimRight(f.Text(), " "),
		})
	}

	out, err := yaml.Marshal(d)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
