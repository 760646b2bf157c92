// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"reflect"

	"github.com/alecthomas/chroma/v2/quick"
	"golang.org/x/term"
)

// JSONOutput adds --json support to a command. Bind OutputJSON to the
// flag and call EmitJSON before text formatting:
//
//	if done, err := params.EmitJSON(records); done {
//	    return err
//	}
type JSONOutput struct {
	OutputJSON bool

	// Writer receives the JSON. Defaults to os.Stdout, highlighted
	// when stdout is a terminal.
	Writer io.Writer
}

// EmitJSON writes result as JSON when --json is set and reports
// whether it did. Nil slices are written as [].
func (j *JSONOutput) EmitJSON(result any) (bool, error) {
	if !j.OutputJSON {
		return false, nil
	}
	writer, color := j.Writer, false
	if writer == nil {
		writer, color = os.Stdout, term.IsTerminal(int(os.Stdout.Fd()))
	}
	return true, WriteJSON(writer, normalizeNilSlice(result), color)
}

// WriteJSON writes value as indented JSON. When color is true the
// output is syntax-highlighted for a 256-color terminal.
func WriteJSON(w io.Writer, value any, color bool) error {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		return err
	}
	if color {
		if err := quick.Highlight(w, buffer.String(), "json", "terminal256", "monokai"); err == nil {
			return nil
		}
	}
	_, err := w.Write(buffer.Bytes())
	return err
}

func normalizeNilSlice(value any) any {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Slice && v.IsNil() {
		return reflect.MakeSlice(v.Type(), 0, 0).Interface()
	}
	return value
}
