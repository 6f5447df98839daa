package avro

import jsoniter "github.com/json-iterator/go"

// jsonAPI is the jsoniter configuration used throughout this package for
// default-literal parsing (default_injector.go) and Value JSON rendering
// (value.go, cmd/avroresolve), mirroring the teacher's own use of
// jsoniter.ConfigCompatibleWithStandardLibrary in its Config layer.
var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary
