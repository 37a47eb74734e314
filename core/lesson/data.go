package lesson

// keyed by "<setor>-<estacao>-<modulo>"
var modulePages = map[string]ModulePage{
	"agricultura-primavera-plantio": {
		Title:        "Técnicas de Plantio na Primavera",
		Description:  "Aprenda as melhores práticas para o plantio durante a estação primaveril, incluindo preparação do solo, seleção de sementes e cronograma de plantio.",
		Level:        "Intermediário",
		Duration:     "2h 30min",
		Participants: 1247,
		Progress:     65,
		Objectives: []string{
			"Identificar o momento ideal para plantio",
			"Preparar adequadamente o solo",
			"Selecionar sementes de qualidade",
			"Implementar técnicas de espaçamento",
		},
		Resources: []string{"Sementes", "Ferramentas de plantio", "Análise de solo", "Calendário agrícola"},
		Sections: []ModuleSection{
			{
				Title:       "Preparação do Solo",
				Description: "Fundamentos para preparar o solo antes do plantio",
				Completed:   true,
				Content: []ContentItem{
					{Type: "video", Title: "Análise de Solo", Duration: "15min"},
					{Type: "text", Title: "Guia de pH do Solo", Duration: "5min"},
					{Type: "image", Title: "Tipos de Solo", Duration: "2min"},
				},
			},
			{
				Title:       "Seleção de Sementes",
				Description: "Como escolher as melhores sementes para sua região",
				Completed:   true,
				Content: []ContentItem{
					{Type: "video", Title: "Variedades Regionais", Duration: "20min"},
					{Type: "text", Title: "Certificação de Sementes", Duration: "8min"},
				},
			},
			{
				Title:       "Técnicas de Plantio",
				Description: "Métodos práticos de plantio e espaçamento",
				Content: []ContentItem{
					{Type: "video", Title: "Plantio Direto", Duration: "25min"},
					{Type: "video", Title: "Espaçamento Ideal", Duration: "18min"},
					{Type: "text", Title: "Cronograma de Plantio", Duration: "10min"},
				},
			},
		},
		RelatedModules: []RelatedModule{
			{Title: "Irrigação Eficiente", Duration: "1h 45min"},
			{Title: "Fertilização Orgânica", Duration: "2h 15min"},
			{Title: "Controle de Pragas", Duration: "1h 30min"},
		},
	},
	"agricultura-primavera-irrigacao": {
		Title:        "Sistemas de Irrigação Inteligente",
		Description:  "Domine as técnicas modernas de irrigação para maximizar a eficiência hídrica e o desenvolvimento das culturas.",
		Level:        "Avançado",
		Duration:     "3h 15min",
		Participants: 892,
		Progress:     30,
		Objectives: []string{
			"Calcular necessidades hídricas das culturas",
			"Implementar sistemas de irrigação por gotejamento",
			"Utilizar sensores de umidade do solo",
			"Otimizar cronogramas de irrigação",
		},
		Resources: []string{"Sensores de umidade", "Sistema de gotejamento", "Controladores automáticos", "Medidores de vazão"},
		Sections: []ModuleSection{
			{
				Title:       "Fundamentos da Irrigação",
				Description: "Conceitos básicos sobre necessidades hídricas",
				Completed:   true,
				Content: []ContentItem{
					{Type: "video", Title: "Ciclo da Água nas Plantas", Duration: "22min"},
					{Type: "text", Title: "Cálculo de Evapotranspiração", Duration: "12min"},
				},
			},
			{
				Title:       "Sistemas de Irrigação",
				Description: "Diferentes métodos e suas aplicações",
				Content: []ContentItem{
					{Type: "video", Title: "Irrigação por Gotejamento", Duration: "30min"},
					{Type: "video", Title: "Aspersão vs Microaspersão", Duration: "25min"},
					{Type: "image", Title: "Esquemas de Instalação", Duration: "5min"},
				},
			},
		},
		RelatedModules: []RelatedModule{
			{Title: "Técnicas de Plantio", Duration: "2h 30min"},
			{Title: "Monitoramento de Culturas", Duration: "1h 50min"},
		},
	},
}

// keyed by "<setor>-<estacao>-<modulo>-<conteudo>"
var contentPages = map[string]ContentPage{
	"agricultura-primavera-plantio-introducao": {
		ID:            "agricultura-primavera-plantio-introducao",
		Title:         "Introdução às Técnicas de Plantio",
		Description:   "Fundamentos essenciais para um plantio bem-sucedido na primavera",
		Type:          "Artigo",
		Duration:      "15 min",
		FeaturedImage: "/agricultural-field-planting.png",
		Sections: []ContentSection{
			{
				Title: "O que é o Plantio Direto?",
				Content: []string{
					"O plantio direto é uma técnica agrícola que consiste em semear diretamente sobre os restos vegetais da cultura anterior, sem revolver o solo. Esta prática revolucionou a agricultura moderna por seus benefícios ambientais e econômicos.",
					"Esta técnica mantém a estrutura do solo intacta, preservando a matéria orgânica e a atividade biológica. O resultado é um sistema mais sustentável e produtivo a longo prazo.",
				},
				Image: "/soil-preparation-farming.png",
			},
			{
				Title: "Benefícios do Sistema",
				Content: []string{
					"A adoção do plantio direto traz diversos benefícios: redução da erosão do solo, economia de combustível e tempo, melhoria da infiltração de água e aumento da matéria orgânica.",
					"Estudos mostram que propriedades que adotam o plantio direto podem ter uma redução de até 90% na perda de solo por erosão, comparado ao sistema convencional.",
				},
			},
			{
				Title: "Preparação e Planejamento",
				Content: []string{
					"O sucesso do plantio direto depende de um planejamento cuidadoso. É essencial fazer a análise do solo, escolher as culturas adequadas e planejar a rotação de culturas.",
					"A dessecação da área deve ser feita no momento correto, geralmente 10 a 15 dias antes do plantio, para garantir que as plantas daninhas estejam controladas.",
				},
			},
		},
		KeyPoints: []string{
			"Preserva a estrutura do solo",
			"Reduz custos operacionais",
			"Melhora a retenção de água",
			"Aumenta a biodiversidade",
			"Reduz a erosão significativamente",
		},
		Resources: []Resource{
			{Name: "Manual de Plantio Direto", Type: "PDF"},
			{Name: "Checklist de Preparação", Type: "PDF"},
			{Name: "Vídeo Demonstrativo", Type: "MP4"},
		},
	},
	"agricultura-primavera-plantio-preparacao-solo": {
		ID:          "agricultura-primavera-plantio-preparacao-solo",
		Title:       "Preparação Adequada do Solo",
		Description: "Como preparar o solo para maximizar o potencial produtivo",
		Type:        "Vídeo",
		Duration:    "22 min",
		Sections: []ContentSection{
			{
				Title: "Análise Química do Solo",
				Content: []string{
					"A análise química revela os níveis de nutrientes disponíveis no solo, incluindo pH, fósforo, potássio e matéria orgânica.",
					"Com base nos resultados, é possível fazer a correção adequada com calcário e fertilizantes.",
				},
			},
			{
				Title: "Correção da Acidez",
				Content: []string{
					"O pH ideal para a maioria das culturas está entre 6,0 e 6,5. Solos ácidos precisam de calagem.",
					"A aplicação de calcário deve ser feita com antecedência, preferencialmente 60 a 90 dias antes do plantio.",
				},
			},
		},
		KeyPoints: []string{
			"pH ideal entre 6,0 e 6,5",
			"Análise química é fundamental",
			"Calagem antecipada",
			"Correção de nutrientes",
		},
		Resources: []Resource{
			{Name: "Tabela de Correção de pH", Type: "PDF"},
			{Name: "Calculadora de Calagem", Type: "Excel"},
		},
	},
	"agricultura-primavera-plantio-selecao-sementes": {
		ID:            "agricultura-primavera-plantio-selecao-sementes",
		Title:         "Seleção de Sementes de Qualidade",
		Description:   "Critérios para escolher as melhores sementes para sua região",
		Type:          "Infográfico",
		Duration:      "10 min",
		FeaturedImage: "/placeholder.svg?height=600&width=800&text=Infográfico+Seleção+de+Sementes",
		Sections: []ContentSection{
			{
				Title: "Critérios de Qualidade",
				Content: []string{
					"Pureza genética e física",
					"Alto poder germinativo",
					"Vigor das sementes",
					"Sanidade fitossanitária",
				},
			},
			{
				Title: "Certificação",
				Content: []string{
					"Sementes certificadas garantem qualidade",
					"Rastreabilidade da origem",
					"Controle de qualidade rigoroso",
					"Garantia de performance",
				},
			},
		},
		KeyPoints: []string{
			"Sempre use sementes certificadas",
			"Verifique o poder germinativo",
			"Considere a adaptação regional",
			"Armazene adequadamente",
		},
		Resources: []Resource{
			{Name: "Guia de Certificação", Type: "PDF"},
			{Name: "Lista de Fornecedores", Type: "PDF"},
		},
	},
}
