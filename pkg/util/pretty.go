package util

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/tidwall/pretty"
)

// PrettyJSON marshals a value and returns an indented JSON payload
func PrettyJSON(val interface{}) ([]byte, error) {
	buf, err := json.Marshal(val)
	if err != nil {
		return nil, errors.Wrap(err, "PrettyJSON(): failed to marshal value")
	}

	return pretty.Pretty(buf), nil
}

// PrettyPrint prints an indented JSON rendition of a value to stdout
func PrettyPrint(val interface{}) {
	buf, err := PrettyJSON(val)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%s", buf)
}

// Dump prints a deep rendition of a value to stderr, for debugging only
func Dump(val interface{}) {
	spew.Fdump(os.Stderr, val)
}
