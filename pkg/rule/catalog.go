// Package rule holds the builtin detection catalog and loading of
// user-supplied rule files.
package rule

import "github.com/NickCirv/perf-x-ray/pkg/types"

// builtin is the process-wide rule catalog. It is constructed once and never
// mutated; declaration order is also finding emission order for rules firing
// on the same line.
var builtin = []types.Rule{
	{
		ID:         "sync-io",
		Name:       "Synchronous I/O in async context",
		Severity:   types.SeverityHigh,
		Languages:  []types.Language{types.LangJS, types.LangTS},
		Pattern:    `\b(?:readFileSync|writeFileSync|appendFileSync|readdirSync|existsSync|statSync|execSync|spawnSync)\s*\(`,
		Message:    "Synchronous I/O blocks the event loop for the duration of the call",
		Suggestion: "Use the promise-based fs/child_process APIs and await the result",
		Keywords:   []string{"Sync"},
		Examples: []string{
			`const data = fs.readFileSync('config.json')`,
			`execSync("git rev-parse HEAD")`,
		},
		NegativeExamples: []string{
			`const data = await fs.promises.readFile('config.json')`,
		},
	},
	{
		ID:         "n-plus-one-query",
		Name:       "Possible N+1 query",
		Severity:   types.SeverityHigh,
		Languages:  []types.Language{types.LangJS, types.LangTS},
		Pattern:    `\b(?:for|while)\s*\([^)]{0,160}\)\s*\{[^{}]{0,400}?\.\s*(?:query|execute|findOne|findById|findAll|find)\s*\(`,
		Message:    "Issuing one query per loop iteration multiplies round trips to the database",
		Suggestion: "Batch the lookups into a single query (IN clause, JOIN, or eager loading)",
		Keywords:   []string{"for", "while"},
		Examples: []string{
			"for (const u of users) {\n  const orders = await db.query('SELECT 1')\n}",
		},
		NegativeExamples: []string{
			`const orders = await db.findAll({ where: { userId: ids } })`,
		},
	},
	{
		ID:         "py-n-plus-one",
		Name:       "Possible N+1 query",
		Severity:   types.SeverityHigh,
		Languages:  []types.Language{types.LangPy},
		Pattern:    `(?m)^[ \t]*for\s+[^\n]+:\s*\n(?:[^\n]*\n){0,6}?[^\n]*(?:\b(?:cursor|session|db|conn)\.(?:execute|fetchone|fetchall)|\.objects\.(?:get|filter))\s*\(`,
		Message:    "Issuing one query per loop iteration multiplies round trips to the database",
		Suggestion: "Fetch the rows in one query before the loop, or use select_related/prefetch_related",
		Keywords:   []string{"for "},
		Examples: []string{
			"for user in users:\n    row = cursor.execute(q, user.id)\n",
			"for pk in ids:\n    item = Item.objects.get(pk=pk)\n",
		},
		NegativeExamples: []string{
			"rows = cursor.execute(q).fetchall()\n",
		},
	},
	{
		ID:         "blocking-sleep-async",
		Name:       "Blocking sleep in async function",
		Severity:   types.SeverityHigh,
		Languages:  []types.Language{types.LangPy},
		Pattern:    `(?s)\basync\s+def\b.{0,500}?\btime\.sleep\s*\(`,
		Message:    "time.sleep blocks the entire event loop inside an async function",
		Suggestion: "Use await asyncio.sleep() instead",
		Keywords:   []string{"time.sleep"},
		Examples: []string{
			"async def poll():\n    time.sleep(5)\n",
		},
		NegativeExamples: []string{
			"def poll():\n    time.sleep(5)\n",
		},
	},
	{
		ID:         "unbounded-query",
		Name:       "Unbounded SQL query",
		Severity:   types.SeverityHigh,
		Languages:  []types.Language{types.LangSQL, types.LangJS, types.LangTS, types.LangPy, types.LangGo},
		Pattern:    `(?i)\bSELECT\s+[^;]{0,300}?\bFROM\s+\w+(?![^;]{0,300}\b(?:LIMIT|FETCH\s+FIRST|TOP)\b)`,
		Message:    "SELECT without LIMIT can return an unbounded result set",
		Suggestion: "Add a LIMIT clause or paginate the query",
		Keywords:   []string{"SELECT", "select", "Select"},
		Examples: []string{
			"SELECT * FROM users",
			"SELECT id, name FROM orders WHERE status = 'open'",
		},
		NegativeExamples: []string{
			"SELECT id FROM users LIMIT 50",
		},
	},
	{
		ID:         "unscoped-write",
		Name:       "Full-table UPDATE or DELETE",
		Severity:   types.SeverityCritical,
		Languages:  []types.Language{types.LangSQL},
		Pattern:    `(?i)\b(?:DELETE\s+FROM|UPDATE)\s+[\w."]+(?![^;]{0,300}\bWHERE\b)`,
		Message:    "UPDATE/DELETE without WHERE scans and rewrites every row in the table",
		Suggestion: "Scope the statement with a WHERE clause, batched if the set is large",
		Keywords:   []string{"DELETE", "UPDATE", "delete", "update"},
		Examples: []string{
			"DELETE FROM sessions;",
			"UPDATE users SET active = 0",
		},
		NegativeExamples: []string{
			"DELETE FROM sessions WHERE expires_at < now();",
		},
	},
	{
		ID:         "redos-regex",
		Name:       "ReDoS-prone regex",
		Severity:   types.SeverityHigh,
		Languages:  []types.Language{types.LangJS, types.LangTS, types.LangPy, types.LangGo},
		Pattern:    `\((?:[^()\n\\]|\\.){0,60}[+*?]\)[+*]`,
		Message:    "Nested quantifiers can trigger catastrophic backtracking on crafted input",
		Suggestion: "Rewrite the pattern without a quantified group under an outer quantifier",
		Examples: []string{
			`const re = /^(a+)+$/`,
			`re.compile(r"(\w+\s?)*$")`,
		},
		NegativeExamples: []string{
			`const re = /^[a-z]+$/`,
		},
	},
	{
		ID:         "py-requests-in-loop",
		Name:       "HTTP request per loop iteration",
		Severity:   types.SeverityHigh,
		Languages:  []types.Language{types.LangPy},
		Pattern:    `(?m)^[ \t]*for\s+[^\n]+:\s*\n(?:[^\n]*\n){0,6}?[^\n]*\b(?:requests|httpx)\.(?:get|post|put|delete|head)\s*\(`,
		Message:    "One HTTP round trip per iteration serializes network latency across the whole loop",
		Suggestion: "Use a session with connection pooling and batch or parallelize the requests",
		Keywords:   []string{"requests.", "httpx."},
		Examples: []string{
			"for url in urls:\n    r = requests.get(url)\n",
		},
		NegativeExamples: []string{
			"r = requests.get(url)\n",
		},
	},
	{
		ID:         "await-in-loop",
		Name:       "Sequential await in loop",
		Severity:   types.SeverityMedium,
		Languages:  []types.Language{types.LangJS, types.LangTS},
		Pattern:    `\b(?:for|while)\s*\([^)]{0,160}\)\s*\{[^{}]{0,400}?\bawait\b`,
		Message:    "Awaiting inside a loop serializes work that could run concurrently",
		Suggestion: "Collect the promises and await Promise.all() once",
		Keywords:   []string{"await"},
		Examples: []string{
			"for (const id of ids) {\n  const row = await load(id)\n}",
		},
		NegativeExamples: []string{
			`const rows = await Promise.all(ids.map(load))`,
		},
	},
	{
		ID:         "nested-loop",
		Name:       "Nested iteration",
		Severity:   types.SeverityMedium,
		Languages:  []types.Language{types.LangJS, types.LangTS, types.LangGo},
		Pattern:    `\bfor\b[^{\n]{0,160}\{[^{}]{0,400}?\bfor\b`,
		Message:    "Directly nested loops are quadratic in the input size",
		Suggestion: "Index one side in a map/set so the inner scan becomes a constant-time lookup",
		Keywords:   []string{"for"},
		Examples: []string{
			"for (let i = 0; i < n; i++) {\n  for (let j = 0; j < n; j++) {",
			"for _, a := range items {\n\tfor _, b := range items {",
		},
		NegativeExamples: []string{
			"for (let i = 0; i < n; i++) {\n  total += xs[i]\n}",
		},
	},
	{
		ID:         "py-nested-loop",
		Name:       "Nested iteration",
		Severity:   types.SeverityMedium,
		Languages:  []types.Language{types.LangPy},
		Pattern:    `(?m)^([ \t]*)for\s+[^\n]+:\s*\n(?:(?:\1[ \t]+[^\n]*)?\n){0,6}?\1[ \t]+for\s+`,
		Message:    "Directly nested loops are quadratic in the input size",
		Suggestion: "Index one side in a dict/set so the inner scan becomes a constant-time lookup",
		Keywords:   []string{"for "},
		Examples: []string{
			"for a in xs:\n    for b in xs:\n        pass\n",
		},
		NegativeExamples: []string{
			"for a in xs:\n    total += a\nfor b in ys:\n    pass\n",
		},
	},
	{
		ID:         "string-concat-loop",
		Name:       "String concatenation in loop",
		Severity:   types.SeverityMedium,
		Languages:  []types.Language{types.LangJS, types.LangTS, types.LangGo},
		Pattern:    `\b(?:for|while)\b[^{\n]{0,160}\{[^{}]{0,300}?\w+\s*\+=\s*(?:['"\x60]|\w)`,
		Message:    "Growing a string with += in a loop copies the accumulated prefix every iteration",
		Suggestion: "Accumulate parts in a slice/array (or strings.Builder) and join once",
		Keywords:   []string{"+="},
		Examples: []string{
			"for (const p of parts) {\n  html += '<li>' + p\n}",
			"for _, p := range parts {\n\ts += p.Name\n}",
		},
		NegativeExamples: []string{
			"for _, p := range parts {\n\tb.WriteString(p)\n}",
		},
	},
	{
		ID:         "json-parse-loop",
		Name:       "JSON round trip in loop",
		Severity:   types.SeverityMedium,
		Languages:  []types.Language{types.LangJS, types.LangTS},
		Pattern:    `\b(?:for|while)\b[^{\n]{0,160}\{[^{}]{0,300}?JSON\.(?:parse|stringify)\s*\(`,
		Message:    "Re-parsing or re-serializing JSON every iteration repeats work that can be hoisted",
		Suggestion: "Parse once before the loop, or restructure to avoid per-iteration serialization",
		Keywords:   []string{"JSON."},
		Examples: []string{
			"for (const row of rows) {\n  const cfg = JSON.parse(raw)\n}",
		},
		NegativeExamples: []string{
			"const cfg = JSON.parse(raw)",
		},
	},
	{
		ID:         "defer-in-loop",
		Name:       "defer inside loop",
		Severity:   types.SeverityMedium,
		Languages:  []types.Language{types.LangGo},
		Pattern:    `\bfor\b[^{\n]{0,160}\{[^{}]{0,300}?\bdefer\b`,
		Message:    "Deferred calls in a loop accumulate until the function returns, holding resources open",
		Suggestion: "Move the loop body into a helper function, or close resources explicitly per iteration",
		Keywords:   []string{"defer"},
		Examples: []string{
			"for _, f := range files {\n\tfh, _ := os.Open(f)\n\tdefer fh.Close()\n}",
		},
		NegativeExamples: []string{
			"fh, _ := os.Open(f)\ndefer fh.Close()",
		},
	},
	{
		ID:         "select-star",
		Name:       "SELECT *",
		Severity:   types.SeverityLow,
		Languages:  []types.Language{types.LangSQL, types.LangJS, types.LangTS, types.LangPy, types.LangGo},
		Pattern:    `(?i)\bSELECT\s+\*\s+FROM\b`,
		Message:    "SELECT * fetches every column whether or not the caller needs it",
		Suggestion: "List the columns the caller actually consumes",
		Keywords:   []string{"SELECT", "select", "Select"},
		Examples: []string{
			"SELECT * FROM users",
		},
		NegativeExamples: []string{
			"SELECT id, email FROM users",
		},
	},
	{
		ID:         "console-in-loop",
		Name:       "Console logging in loop",
		Severity:   types.SeverityLow,
		Languages:  []types.Language{types.LangJS, types.LangTS},
		Pattern:    `\b(?:for|while)\b[^{\n]{0,160}\{[^{}]{0,300}?console\.(?:log|debug|info)\s*\(`,
		Message:    "Per-iteration console output is synchronous and dominates tight loops",
		Suggestion: "Aggregate and log once after the loop, or gate behind a debug flag",
		Keywords:   []string{"console."},
		Examples: []string{
			"for (const r of rows) {\n  console.log(r.id)\n}",
		},
		NegativeExamples: []string{
			"console.log(rows.length)",
		},
	},
}

// Builtin returns the builtin catalog in declaration order. The returned
// slice is a copy so callers cannot reorder the catalog.
func Builtin() []types.Rule {
	out := make([]types.Rule, len(builtin))
	copy(out, builtin)
	return out
}

// For returns the rules from the given set that apply to lang, preserving
// the set's order. Catalog order fixes the tie-break between rules firing
// on the same line.
func For(rules []types.Rule, lang types.Language) []types.Rule {
	var out []types.Rule
	for _, r := range rules {
		if r.AppliesTo(lang) {
			out = append(out, r)
		}
	}
	return out
}
