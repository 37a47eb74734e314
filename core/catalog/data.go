package catalog

// modules returns the 6 modules every sub-subject currently offers.
func modules() []Module {
	return []Module{
		{Name: "Módulo 1", Slug: "modulo-1"},
		{Name: "Módulo 2", Slug: "modulo-2"},
		{Name: "Módulo 3", Slug: "modulo-3"},
		{Name: "Módulo 4", Slug: "modulo-4"},
		{Name: "Módulo 5", Slug: "modulo-5"},
		{Name: "Módulo 6", Slug: "modulo-6"},
	}
}

var subjects = []Subject{
	{
		Title: "GOA",
		Slug:  "goa",
		SubSubjects: []SubSubject{
			{Name: "Estação O.S.", Slug: "estacao-os", Modules: modules()},
			{Name: "Estação Formação", Slug: "estacao-formacao", Modules: modules()},
			{Name: "Estação Tratos", Slug: "estacao-tratos", Modules: modules()},
			{Name: "Estação Logística", Slug: "estacao-logistica", Modules: modules()},
			{Name: "Estação Monit. de Risco", Slug: "estacao-monit-risco", Modules: modules()},
		},
	},
	{
		Title: "Automotiva mecânica",
		Slug:  "automotiva-mecanica",
		SubSubjects: []SubSubject{
			{Name: "Pilares da automotiva mecânica", Slug: "pilares-automotiva", Modules: modules()},
			{Name: "Setores da Automotiva Mecânica", Slug: "setores-automotiva", Modules: modules()},
		},
	},
	{
		Title: "Tecnologia Agrícola",
		Slug:  "tecnologia-agricola",
		SubSubjects: []SubSubject{
			{Name: "Importância e abrangência da T.A", Slug: "importancia-abrangencia", Modules: modules()},
			{Name: "Equipamentos e Automação", Slug: "equipamentos-automacao", Modules: modules()},
		},
	},
	{
		Title: "Produção Agrícola",
		Slug:  "producao-agricola",
		SubSubjects: []SubSubject{
			{Name: "Formação", Slug: "formacao", Modules: modules()},
			{Name: "Tratos", Slug: "tratos", Modules: modules()},
			{Name: "Logística", Slug: "logistica", Modules: modules()},
		},
	},
}
