package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	goerrors "github.com/go-errors/errors"
	"github.com/pkg/errors"
	"io"
	"io/ioutil"
	"log"
	"strings"
)

// ReadLists reads ranked lists of document ids. The input is either a JSON array of arrays of ids, or plain text with
// one list per line and the ids separated by whitespace.
func ReadLists(r io.Reader) ([][]string, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if trimmed := bytes.TrimSpace(b); len(trimmed) > 0 && trimmed[0] == '[' {
		var lists [][]string
		if err := json.Unmarshal(trimmed, &lists); err != nil {
			return nil, errors.Wrap(err, "decoding lists")
		}
		return lists, nil
	}

	var lists [][]string
	s := bufio.NewScanner(bytes.NewReader(b))
	for s.Scan() {
		fields := strings.Fields(s.Text())
		if len(fields) == 0 {
			continue
		}
		lists = append(lists, fields)
	}
	return lists, s.Err()
}

// Fatal logs the error with the stack of the caller and exits.
func Fatal(err error) {
	log.Fatalln(goerrors.Wrap(err, 1).ErrorStack())
}
