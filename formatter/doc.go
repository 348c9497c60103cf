// Package formatter renders validation reports as JSON or XML.
//
// XML is written by hand so that element order matches the report struct.
package formatter
