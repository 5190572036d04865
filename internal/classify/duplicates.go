package classify

// declarationSite ties an extracted declaration to the record index
// that owns it.
type declarationSite struct {
	fileIdx int
	decl    declaration
}

// resolveDuplicates appends DuplicateFunctionName issues for every
// declaration whose name appears more than once across the change set,
// whether within one file or in different files. Every declaring record
// is flagged, so two files that each define validate both surface it.
//
// Names are registered in input order and sites in line order, which
// keeps the appended issues deterministic across runs.
func resolveDuplicates(records []FileRecord, declsPerFile [][]declaration) {
	sites := make(map[string][]declarationSite)
	var order []string

	for i, decls := range declsPerFile {
		for _, d := range decls {
			if _, seen := sites[d.name]; !seen {
				order = append(order, d.name)
			}
			sites[d.name] = append(sites[d.name], declarationSite{fileIdx: i, decl: d})
		}
	}

	for _, name := range order {
		declaring := sites[name]
		if len(declaring) < 2 {
			continue
		}
		for _, site := range declaring {
			records[site.fileIdx].Issues = append(records[site.fileIdx].Issues, Issue{
				Kind:   IssueDuplicateName,
				Line:   site.decl.line,
				Detail: name,
			})
		}
	}
}
