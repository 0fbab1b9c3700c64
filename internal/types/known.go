package types

import "strings"

// wellKnown maps simple names of common library classes to their packages.
var wellKnown = map[string]string{
	"String":                         "java.lang",
	"Object":                         "java.lang",
	"Integer":                        "java.lang",
	"Long":                           "java.lang",
	"Double":                         "java.lang",
	"Boolean":                        "java.lang",
	"Character":                      "java.lang",
	"Math":                           "java.lang",
	"System":                         "java.lang",
	"Throwable":                      "java.lang",
	"Exception":                      "java.lang",
	"RuntimeException":               "java.lang",
	"IllegalArgumentException":       "java.lang",
	"IllegalStateException":          "java.lang",
	"UnsupportedOperationException":  "java.lang",
	"NullPointerException":           "java.lang",
	"ArithmeticException":            "java.lang",
	"IndexOutOfBoundsException":      "java.lang",
	"ArrayIndexOutOfBoundsException": "java.lang",
	"ClassCastException":             "java.lang",
	"NumberFormatException":          "java.lang",
	"Error":                          "java.lang",
	"AssertionError":                 "java.lang",
	"IOException":                    "java.io",
	"UncheckedIOException":           "java.io",
	"Collection":                     "java.util",
	"Collections":                    "java.util",
	"Arrays":                         "java.util",
	"List":                           "java.util",
	"ArrayList":                      "java.util",
	"LinkedList":                     "java.util",
	"Map":                            "java.util",
	"HashMap":                        "java.util",
	"TreeMap":                        "java.util",
	"LinkedHashMap":                  "java.util",
	"NavigableMap":                   "java.util",
	"Set":                            "java.util",
	"HashSet":                        "java.util",
	"LinkedHashSet":                  "java.util",
	"TreeSet":                        "java.util",
	"Optional":                       "java.util",
	"NoSuchElementException":         "java.util",
	"Stream":                         "java.util.stream",
	"Collectors":                     "java.util.stream",
}

// Qualify returns the qualified name of a well-known simple class name;
// other names are returned unchanged.
func Qualify(name string) string {
	if strings.ContainsRune(name, '.') {
		return name
	}
	if pkg, ok := wellKnown[name]; ok {
		return pkg + "." + name
	}
	return name
}

// IsLibraryClass reports whether a qualified name belongs to the platform
// library (java.*, javax.*).
func IsLibraryClass(qualified string) bool {
	return strings.HasPrefix(qualified, "java.") || strings.HasPrefix(qualified, "javax.")
}

// Resolve interns a type written the way it appears in source: "int",
// "String", "List", "java.util.Map", "int[][]". Generic arguments are
// erased. Returns NoTypeID for an empty name.
func (in *Interner) Resolve(name string) TypeID {
	name = strings.TrimSpace(name)
	if i := strings.IndexByte(name, '<'); i >= 0 {
		if j := strings.LastIndexByte(name, '>'); j > i {
			name = name[:i] + name[j+1:]
		}
	}
	if name == "" {
		return NoTypeID
	}
	if base, ok := strings.CutSuffix(name, "[]"); ok {
		elem := in.Resolve(base)
		if !elem.IsValid() {
			return NoTypeID
		}
		return in.ArrayOf(elem)
	}
	if k, ok := ParseKind(name); ok && k != KindClass && k != KindArray {
		return in.Primitive(k)
	}
	return in.Named(Qualify(name))
}
