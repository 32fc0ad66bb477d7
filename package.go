//
// web service that accepts a course outcome sheet - the grid of
// CLO definitions, assessment modules with their CLO mapping and
// maximum marks, and one row of marks per student - and returns
// per-student CLO and PLO attainment alongside the final course grade.
//
// the same engine backs the strp batch command line tool, which reads
// course workbooks straight from disk.
//
package strp
