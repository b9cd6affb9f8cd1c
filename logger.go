// Copyright 2015 The astrogo Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fits

// Logger is called with diagnostic messages as a File is opened and its
// HDUs are walked (e.g. a gzip file that was decompressed, or each HDU
// as it is segmented). The default is
// a no-op; set it to, say, log.Printf to observe what Open actually
// did. There is no per-File logger: a single package-level sink is
// enough for incidental diagnostics without wiring a logging framework
// through every constructor.
var Logger func(format string, args ...interface{}) = func(string, ...interface{}) {}

func logf(format string, args ...interface{}) {
	Logger(format, args...)
}
