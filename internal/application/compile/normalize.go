package compile

import (
	"regexp"
	"strings"
)

// 预览以 classic script 运行，模块语法需要改写：
// react 导入改为从全局 React 解构，其余导入移除，export 前缀去掉。
var (
	importFromPattern  = regexp.MustCompile(`(?m)^[ \t]*import\s+([^;'"]*?)\s+from\s+['"]([^'"]+)['"][ \t]*;?[ \t]*$`)
	importBarePattern  = regexp.MustCompile(`(?m)^[ \t]*import\s+['"][^'"]+['"][ \t]*;?[ \t]*$`)
	exportDefaultDecl  = regexp.MustCompile(`(?m)^([ \t]*)export\s+default\s+((?:async\s+)?function(?:\s*\*\s*|\s+)([A-Za-z_$][\w$]*)|class\s+([A-Za-z_$][\w$]*))`)
	exportDefaultIdent = regexp.MustCompile(`(?m)^[ \t]*export\s+default\s+([A-Za-z_$][\w$]*)[ \t]*;?[ \t]*$`)
	exportDefaultExpr  = regexp.MustCompile(`(?m)^([ \t]*)export\s+default\s+`)
	exportNamedDecl    = regexp.MustCompile(`(?m)^([ \t]*)export\s+((?:async\s+)?function\b|class\b|const\b|let\b|var\b)`)
	exportList         = regexp.MustCompile(`(?m)^[ \t]*export\s*\{([^}]*)\}[ \t]*;?[ \t]*$`)
)

func normalizeModuleSyntax(source, componentName string) string {
	if !strings.Contains(source, "import") && !strings.Contains(source, "export") {
		return source
	}

	out := importFromPattern.ReplaceAllStringFunc(source, func(stmt string) string {
		m := importFromPattern.FindStringSubmatch(stmt)
		return keepLines(stmt, rewriteImport(m[1], m[2]))
	})
	out = importBarePattern.ReplaceAllStringFunc(out, func(stmt string) string {
		return keepLines(stmt, "")
	})

	// export default function Foo / class Foo：去掉前缀，组件名不符时补别名
	var alias string
	out = exportDefaultDecl.ReplaceAllStringFunc(out, func(stmt string) string {
		m := exportDefaultDecl.FindStringSubmatch(stmt)
		name := m[3]
		if name == "" {
			name = m[4]
		}
		if name != componentName {
			alias = name
		}
		return m[1] + m[2]
	})

	// export default Foo;
	out = exportDefaultIdent.ReplaceAllStringFunc(out, func(stmt string) string {
		m := exportDefaultIdent.FindStringSubmatch(stmt)
		if m[1] == componentName {
			return ""
		}
		return "const " + componentName + " = " + m[1] + ";"
	})

	// export { Foo }; export { Foo as default };
	out = exportList.ReplaceAllStringFunc(out, func(stmt string) string {
		m := exportList.FindStringSubmatch(stmt)
		if name := exportedAsComponent(m[1], componentName); name != "" {
			alias = name
		}
		return keepLines(stmt, "")
	})

	// export default <expression>
	out = exportDefaultExpr.ReplaceAllString(out, "${1}const "+componentName+" = ")
	out = exportNamedDecl.ReplaceAllString(out, "${1}${2}")

	if alias != "" {
		out = strings.TrimRight(out, "\n") + "\nconst " + componentName + " = " + alias + ";\n"
	}
	return out
}

// exportedAsComponent 导出列表中作为默认导出或以组件名导出的本地名
func exportedAsComponent(clause, componentName string) string {
	for _, part := range strings.Split(clause, ",") {
		fields := strings.Fields(part)
		if len(fields) != 3 || fields[1] != "as" {
			continue
		}
		if (fields[2] == "default" || fields[2] == componentName) && fields[0] != componentName {
			return fields[0]
		}
	}
	return ""
}

// rewriteImport 将 react 的导入子句改写为全局解构
func rewriteImport(clause, module string) string {
	if module != "react" {
		return ""
	}
	clause = strings.TrimSpace(clause)

	var stmts []string
	var named string
	if i := strings.Index(clause, "{"); i >= 0 {
		if j := strings.LastIndex(clause, "}"); j > i {
			named = clause[i+1 : j]
			clause = strings.TrimSpace(clause[:i] + clause[j+1:])
		}
	}
	clause = strings.Trim(clause, " \t\n,")

	if clause != "" {
		name := clause
		if strings.HasPrefix(name, "*") {
			name = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(strings.TrimPrefix(name, "*")), "as"))
		}
		if name != "" && name != "React" {
			stmts = append(stmts, "const "+name+" = React;")
		}
	}

	if named != "" {
		var bindings []string
		for _, part := range strings.Split(named, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			fields := strings.Fields(part)
			if len(fields) == 3 && fields[1] == "as" {
				bindings = append(bindings, fields[0]+": "+fields[2])
				continue
			}
			bindings = append(bindings, part)
		}
		if len(bindings) > 0 {
			stmts = append(stmts, "const { "+strings.Join(bindings, ", ")+" } = React;")
		}
	}
	return strings.Join(stmts, " ")
}

// keepLines 保持行数不变，编译错误的行号与原文一致
func keepLines(original, replacement string) string {
	n := strings.Count(original, "\n") - strings.Count(replacement, "\n")
	if n <= 0 {
		return replacement
	}
	return replacement + strings.Repeat("\n", n)
}
