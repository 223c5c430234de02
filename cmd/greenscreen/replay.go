package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dshills/greenscreen/internal/aid"
	"github.com/dshills/greenscreen/internal/session"
)

// Attention-key names accepted by the "key" command.
var keyNames = map[string]aid.Key{
	"ENTER":    aid.Enter,
	"CLEAR":    aid.Clear,
	"HELP":     aid.Help,
	"PRINT":    aid.Print,
	"PAGEUP":   aid.RollDown,
	"PAGEDOWN": aid.RollUp,
}

// replay applies a line-oriented order script to the session. One command
// per line; blank lines and #-comments are skipped. Numeric arguments take
// any base strconv accepts (0x.. works).
//
//	sba ROW COL
//	sf ATTR LEN FFW1 FFW2 FCW1 FCW2
//	text TEXT...
//	field N TEXT...
//	key NAME            (ENTER, CLEAR, HELP, PRINT, PAGEUP, PAGEDOWN, F1..F24)
//	tab | backtab
//	lock | unlock | clear
func replay(sess *session.Session, r io.Reader) ([][]byte, error) {
	var responses [][]byte

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")

		var err error
		switch strings.ToLower(cmd) {
		case "sba":
			err = doSBA(sess, rest)
		case "sf":
			err = doSF(sess, rest)
		case "text":
			sess.WriteText(rest)
		case "field":
			err = doField(sess, rest)
		case "key":
			var resp []byte
			resp, err = doKey(sess, rest)
			if resp != nil {
				responses = append(responses, resp)
			}
		case "tab":
			sess.NextField()
		case "backtab":
			sess.PrevField()
		case "lock":
			sess.SetKeyboardLocked(true)
		case "unlock":
			sess.SetKeyboardLocked(false)
		case "clear":
			sess.ClearScreen()
		default:
			err = fmt.Errorf("unknown command %q", cmd)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return responses, nil
}

func ints(args string, want int) ([]int, error) {
	parts := strings.Fields(args)
	if len(parts) != want {
		return nil, fmt.Errorf("expected %d arguments, got %d", want, len(parts))
	}
	out := make([]int, want)
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", p, err)
		}
		out[i] = int(n)
	}
	return out, nil
}

func doSBA(sess *session.Session, args string) error {
	v, err := ints(args, 2)
	if err != nil {
		return err
	}
	return sess.ProcessSetBufferAddress(v[0], v[1])
}

func doSF(sess *session.Session, args string) error {
	v, err := ints(args, 6)
	if err != nil {
		return err
	}
	sess.StartField(byte(v[0]), v[1], byte(v[2]), byte(v[3]), byte(v[4]), byte(v[5]))
	return nil
}

func doField(sess *session.Session, args string) error {
	idx, text, _ := strings.Cut(args, " ")
	n, err := strconv.Atoi(idx)
	if err != nil {
		return fmt.Errorf("field index %q: %w", idx, err)
	}
	return sess.SetFieldText(n, text)
}

func doKey(sess *session.Session, args string) ([]byte, error) {
	name := strings.ToUpper(strings.TrimSpace(args))
	key, ok := keyNames[name]
	if !ok {
		if n, err := parseFunctionKey(name); err == nil {
			key = n
		} else {
			return nil, fmt.Errorf("unknown key %q", name)
		}
	}
	mode := aid.CollectModified
	if key == aid.Clear {
		mode = aid.CollectNone
	}
	return sess.PressKey(key, mode, true), nil
}

func parseFunctionKey(name string) (aid.Key, error) {
	if !strings.HasPrefix(name, "F") {
		return 0, fmt.Errorf("not a function key: %q", name)
	}
	n, err := strconv.Atoi(name[1:])
	if err != nil {
		return 0, fmt.Errorf("not a function key: %q", name)
	}
	return aid.PF(n)
}
