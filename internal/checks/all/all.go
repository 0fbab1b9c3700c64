// Package all links every check package into the binary. Import it for
// its side effects:
//
//	import _ "gradelint/internal/checks/all"
package all

import (
	_ "gradelint/internal/checks/api"
	_ "gradelint/internal/checks/exceptions"
	_ "gradelint/internal/checks/general"
	_ "gradelint/internal/checks/oop"
)
