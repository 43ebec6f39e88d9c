// Copyright © 2019 Andrei Gubarev <agubarev@protonmail.com>

package cmd

import (
	"fmt"
	"io/ioutil"
	"log"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/agubarev/firmtown/pkg/device"
	"github.com/agubarev/firmtown/pkg/util"
	"github.com/agubarev/firmtown/pkg/wire"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	showAsJSON  bool
	showVerbose bool
)

// showCmd decodes a device payload from a file and prints its report
var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Decode a device payload and print its report.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		payload, err := ioutil.ReadFile(args[0])
		if err != nil {
			log.Fatal(err)
		}

		var v wire.Variant
		if err := json.Unmarshal(payload, &v); err != nil {
			log.Fatal(err)
		}

		d, err := device.FromWire(v)
		if err != nil {
			log.Fatal(err)
		}

		// dumping the decoded record to stderr for inspection
		if showVerbose {
			util.Dump(d)
		}

		if showAsJSON {
			out, err := d.ToVariant(wire.ShapeKeyed)
			if err != nil {
				log.Fatal(err)
			}

			util.PrettyPrint(out)

			return
		}

		fmt.Print(d.String())
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().BoolVar(&showAsJSON, "json", false, "print the device as an indented json payload")
	showCmd.Flags().BoolVar(&showVerbose, "verbose", false, "dump the decoded record to stderr")
}
