package resolve

import (
	"github.com/anoideaopen/mirror/core/stringsx"
	"github.com/iancoleman/strcase"
	"github.com/samber/lo"
)

// Names returns the identifiers tried for a symbolic name, in order: the name
// itself, the name with its first letter upper-cased ("getURL" gives "GetURL")
// and its camel-cased form ("user_name" gives "UserName"). Go only exposes
// exported identifiers to reflection, so the later forms reach the members a
// lower-case symbol refers to.
func Names(name string) []string {
	return lo.Uniq([]string{
		name,
		stringsx.UpperFirstChar(name),
		strcase.ToCamel(name),
	})
}
