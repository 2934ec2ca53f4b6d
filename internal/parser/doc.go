// Package parser turns project specification text into a spec.ProjectSpec
// tree and back.
//
// The grammar is line oriented and bilingual: every keyword has a Korean
// and an English form, and a document may mix them freely.
//
// Header fields, recognized only before the first module block:
//
//	언어: / language:                    프레임워크: / framework:
//	데이터베이스: / database:            컨벤션: / conventions:
//	목적: / purpose:                     환경: / environment:
//	전역상태: / global-state:            외부의존성: / external-dependencies:
//
// Module blocks start with "[모듈]", "[module]", "모듈:" or "module:".
// The remainder of the line is the module name, optionally followed by
// " - " and a description. Function blocks start with "[함수]",
// "[function]", or the bare keywords "함수" / "function" followed by the
// function name, and are recognized only inside a module.
//
// A function carries up to three fields, opened by "입력:" / "inputs:",
// "출력:" / "outputs:" and "동작:" / "behavior:". A field's value begins
// with the remainder of its keyword line and continues over following
// lines indented deeper than the keyword line. Lines starting with "#"
// or "//" are comments. Inside the behavior text, bracketed names such
// as "[검색]" or "[auth.login]" reference other functions.
//
// Parsing never fails: lines that fit nothing under the current state
// close any open field and are otherwise dropped, so partially edited
// documents degrade to partial trees.
package parser
