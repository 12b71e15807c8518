// Package reflect converts textual arguments into typed values and inspects
// method sets of plain Go values. It backs the text-argument call path of the
// mirror handles, where every argument arrives as a string and is parsed into
// the parameter type of the candidate method.
package reflect
