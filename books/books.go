/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package books provides the canonical USFM book-code table.
package books

import "strings"

// bookNumbers maps canonical USFM book codes to their canon ordinal.
// Codes 1-39 are Old Testament, 40-66 New Testament, 67+ deuterocanon
// and peripherals.
var bookNumbers = map[string]int{
	"GEN": 1, "EXO": 2, "LEV": 3, "NUM": 4, "DEU": 5,
	"JOS": 6, "JDG": 7, "RUT": 8, "1SA": 9, "2SA": 10,
	"1KI": 11, "2KI": 12, "1CH": 13, "2CH": 14, "EZR": 15,
	"NEH": 16, "EST": 17, "JOB": 18, "PSA": 19, "PRO": 20,
	"ECC": 21, "SNG": 22, "ISA": 23, "JER": 24, "LAM": 25,
	"EZK": 26, "DAN": 27, "HOS": 28, "JOL": 29, "AMO": 30,
	"OBA": 31, "JON": 32, "MIC": 33, "NAM": 34, "HAB": 35,
	"ZEP": 36, "HAG": 37, "ZEC": 38, "MAL": 39,
	"MAT": 40, "MRK": 41, "LUK": 42, "JHN": 43, "ACT": 44,
	"ROM": 45, "1CO": 46, "2CO": 47, "GAL": 48, "EPH": 49,
	"PHP": 50, "COL": 51, "1TH": 52, "2TH": 53, "1TI": 54,
	"2TI": 55, "TIT": 56, "PHM": 57, "HEB": 58, "JAS": 59,
	"1PE": 60, "2PE": 61, "1JN": 62, "2JN": 63, "3JN": 64,
	"JUD": 65, "REV": 66,
	"TOB": 67, "JDT": 68, "ESG": 69, "WIS": 70, "SIR": 71,
	"BAR": 72, "LJE": 73, "S3Y": 74, "SUS": 75, "BEL": 76,
	"1MA": 77, "2MA": 78, "3MA": 79, "4MA": 80, "1ES": 81,
	"2ES": 82, "MAN": 83, "PS2": 84, "ODA": 85, "PSS": 86,
	"XXA": 87, "XXB": 88, "XXC": 89, "XXD": 90, "XXE": 91,
	"XXF": 92, "XXG": 93,
	"FRT": 94, "BAK": 95, "OTH": 96, "INT": 97, "CNC": 98,
	"GLO": 99, "TDX": 100, "NDX": 101,
}

// Number returns the canon ordinal for a USFM book code, or 0 when the
// code is not recognized. Lookup is case-insensitive.
func Number(code string) int {
	return bookNumbers[strings.ToUpper(code)]
}

// IsCanonical reports whether code names a book of the 66-book canon.
func IsCanonical(code string) bool {
	n := Number(code)
	return n >= 1 && n <= 66
}

// IsValid reports whether code is any recognized book code.
func IsValid(code string) bool {
	return Number(code) > 0
}

// Codes returns every recognized book code in canon order.
func Codes() []string {
	codes := make([]string, 0, len(bookNumbers))
	byNumber := make(map[int]string, len(bookNumbers))
	max := 0
	for code, n := range bookNumbers {
		byNumber[n] = code
		if n > max {
			max = n
		}
	}
	for n := 1; n <= max; n++ {
		if code, ok := byNumber[n]; ok {
			codes = append(codes, code)
		}
	}
	return codes
}
