package alsmatrix

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// filterGroups evaluates a folder-filter expression against every group and
// keeps the groups it accepts. The expression is compiled once per call.
func filterGroups(groups []FolderGroup, expression string) ([]FolderGroup, error) {
	program, err := expr.Compile(expression, expr.Env(map[string]any{}), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("compile folder filter %q: %w", expression, err)
	}

	var out []FolderGroup
	for _, g := range groups {
		forms := make([]string, len(g.Forms))
		for i, f := range g.Forms {
			forms[i] = f.FormOID
		}
		env := map[string]any{
			"folderOID":  g.FolderOID,
			"folderName": "",
			"formCount":  len(g.Forms),
			"forms":      forms,
		}
		if g.FolderName != nil {
			env["folderName"] = *g.FolderName
		}
		result, err := expr.Run(program, env)
		if err != nil {
			return nil, fmt.Errorf("evaluate folder filter %q: %w", expression, err)
		}
		keep, ok := result.(bool)
		if !ok {
			return nil, fmt.Errorf("folder filter %q evaluated to %T, expected bool", expression, result)
		}
		if keep {
			out = append(out, g)
		}
	}
	return out, nil
}
