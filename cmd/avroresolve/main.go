// Command avroresolve resolves a small set of built-in writer/reader schema
// scenarios and prints the resolved value as JSON. It does not parse Avro
// JSON schemas from files — that parser is out of scope for this module —
// so its input is a named scenario rather than arbitrary schema files, a
// deliberately thin stand-in for the file-driven avrosv/avrogen tools.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/relayavro/avro"
)

type scenario struct {
	name    string
	writer  avro.Schema
	reader  avro.Schema
	payload []byte
}

func main() {
	os.Exit(realMain(os.Args, os.Stdout))
}

func realMain(args []string, out io.Writer) int {
	scenarios := builtinScenarios()

	flgs := flag.NewFlagSet("avroresolve", flag.ExitOnError)
	flgs.SetOutput(out)
	list := flgs.Bool("list", false, "List available scenario names and exit.")
	flgs.Usage = func() {
		_, _ = fmt.Fprintln(out, "Usage: avroresolve [-list] scenario")
	}
	if err := flgs.Parse(args[1:]); err != nil {
		return 1
	}

	if *list {
		names := make([]string, 0, len(scenarios))
		for name := range scenarios {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			_, _ = fmt.Fprintln(out, name)
		}
		return 0
	}

	if flgs.NArg() != 1 {
		flgs.Usage()
		return 1
	}

	sc, ok := scenarios[flgs.Arg(0)]
	if !ok {
		_, _ = fmt.Fprintf(out, "Error: unknown scenario %q\n", flgs.Arg(0))
		return 1
	}

	r := avro.NewReaderFromBytes(sc.payload)
	dst := avro.NewValue(sc.reader)
	if err := avro.Resolve(r, sc.writer, sc.reader, dst); err != nil {
		_, _ = fmt.Fprintf(out, "Error: %v\n", err)
		return 2
	}

	b, err := dst.MarshalJSON()
	if err != nil {
		_, _ = fmt.Fprintf(out, "Error: %v\n", err)
		return 2
	}
	_, _ = fmt.Fprintln(out, string(b))
	return 0
}

// builtinScenarios mirrors the seed suite in the resolver's test file: a
// small, fixed set of writer/reader schema pairs with pre-encoded payloads,
// since there is no schema-JSON or value-encoder front end to build these
// from user input.
func builtinScenarios() map[string]scenario {
	intSchema := avro.NewPrimitiveSchema(avro.Int)
	floatSchema := avro.NewPrimitiveSchema(avro.Float)
	doubleSchema := avro.NewPrimitiveSchema(avro.Double)
	stringSchema := avro.NewPrimitiveSchema(avro.String)

	intToFloatField, _ := avro.NewField("a", intSchema)
	intToFloatReaderField, _ := avro.NewField("a", floatSchema)
	intToFloatWriter, _ := avro.NewRecordSchema("Rec", "", []*avro.Field{intToFloatField})
	intToFloatReader, _ := avro.NewRecordSchema("Rec", "", []*avro.Field{intToFloatReaderField})

	defaultField, _ := avro.NewField("g", stringSchema, avro.WithDefault("default g"))
	defaultWriter, _ := avro.NewRecordSchema("Rec", "", nil)
	defaultReader, _ := avro.NewRecordSchema("Rec", "", []*avro.Field{defaultField})

	return map[string]scenario{
		"int-to-float": {
			name:    "int-to-float",
			writer:  intToFloatWriter,
			reader:  intToFloatReader,
			payload: zigzagInt(1),
		},
		"default-string": {
			name:    "default-string",
			writer:  defaultWriter,
			reader:  defaultReader,
			payload: nil,
		},
		doubleSchema.String(): {
			name:    doubleSchema.String(),
			writer:  doubleSchema,
			reader:  doubleSchema,
			payload: float64Bytes(2.0),
		},
	}
}

func zigzagInt(n int32) []byte {
	var buf bytes.Buffer
	u := uint32((n << 1) ^ (n >> 31))
	for u >= 0x80 {
		buf.WriteByte(byte(u) | 0x80)
		u >>= 7
	}
	buf.WriteByte(byte(u))
	return buf.Bytes()
}

func float64Bytes(f float64) []byte {
	bits := math.Float64bits(f)
	buf := make([]byte, 8)
	for i := 0; i < 8; i++ {
		buf[i] = byte(bits >> (8 * i))
	}
	return buf
}
