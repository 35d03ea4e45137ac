// Package chronofmt provides:
//
//   - A declarative mini-language and builder DSL for date-time textual formats
//   - Compilation into reusable Formatter/Parser pairs over partially-filled,
//     strongly-typed field sets (Format, FieldSpec, Accessor)
//   - A stable error model via Issues (code, message, character offset)
//   - Backtracking parsing with copy-on-fork accumulators and deterministic
//     splitting of adjacent numeric fields
//
// Design policy:
//   - Keep only public APIs in the root package; put the executable operation
//     trees under internal/.
//   - Place the builder DSL under dsl/, reference field sets under datetime/,
//     codecs under codec/ and the named-format catalog under catalog/.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	f, err := chronofmt.Compile(datetime.DateRegistry(), "yyyy'-'MM'-'dd", datetime.NewDateFields)
//	s, err := f.Format(&datetime.DateFields{...})
//	v, err := f.Parse("2023-01-02")
package chronofmt
