package catalog

import "medtrack/internal/domain"

var mockProducts = []domain.PharmacyProduct{
	{ID: "p1", Name: "Losartana 50mg", Description: "Anti-hipertensivo, caixa com 30 comprimidos.", Price: 22.90, Category: "Hipertensão", ImageURL: "https://images.medtrack.app/products/losartana.png", InStock: true, RequiresPrescription: true},
	{ID: "p2", Name: "Dipirona Sódica 500mg", Description: "Analgésico e antitérmico, 10 comprimidos.", Price: 8.50, Category: "Analgésicos", ImageURL: "https://images.medtrack.app/products/dipirona.png", InStock: true},
	{ID: "p3", Name: "Paracetamol 750mg", Description: "Analgésico e antitérmico, 20 comprimidos.", Price: 12.90, Category: "Analgésicos", ImageURL: "https://images.medtrack.app/products/paracetamol.png", InStock: true},
	{ID: "p4", Name: "Ibuprofeno 600mg", Description: "Anti-inflamatório, 20 cápsulas.", Price: 18.40, Category: "Anti-inflamatórios", ImageURL: "https://images.medtrack.app/products/ibuprofeno.png", InStock: true},
	{ID: "p5", Name: "Metformina 850mg", Description: "Antidiabético oral, 30 comprimidos.", Price: 15.00, Category: "Diabetes", ImageURL: "https://images.medtrack.app/products/metformina.png", InStock: true, RequiresPrescription: true},
	{ID: "p6", Name: "Omeprazol 20mg", Description: "Protetor gástrico, 28 cápsulas.", Price: 19.90, Category: "Gastrointestinal", ImageURL: "https://images.medtrack.app/products/omeprazol.png", InStock: true},
	{ID: "p7", Name: "Vitamina D3 2000UI", Description: "Suplemento vitamínico, 60 cápsulas.", Price: 39.90, Category: "Vitaminas", ImageURL: "https://images.medtrack.app/products/vitamina-d3.png", InStock: true},
	{ID: "p8", Name: "Sinvastatina 20mg", Description: "Redutor de colesterol, 30 comprimidos.", Price: 16.50, Category: "Colesterol", ImageURL: "https://images.medtrack.app/products/sinvastatina.png", InStock: true, RequiresPrescription: true},
	{ID: "p9", Name: "Protetor Solar FPS 50", Description: "Proteção UVA/UVB, 200ml.", Price: 59.90, Category: "Dermocosméticos", ImageURL: "https://images.medtrack.app/products/protetor.png", InStock: false},
}

var mockMedications = []domain.Medication{
	{
		ID:                "med-1",
		Name:              "Losartana Potássica 50mg",
		Dosage:            "50mg",
		Form:              "Comprimido",
		Frequency:         domain.FrequencyDaily,
		Times:             []string{"08:00", "20:00"},
		Stock:             3,
		LowStockThreshold: 5,
		Instructions:      "Tomar com água, de preferência no mesmo horário.",
		StartDate:         "2025-01-10T00:00:00Z",
		Active:            true,
	},
	{
		ID:                "med-2",
		Name:              "Metformina 850mg",
		Dosage:            "850mg",
		Form:              "Comprimido",
		Frequency:         domain.FrequencyDaily,
		Times:             []string{"07:00", "19:00"},
		Stock:             40,
		LowStockThreshold: 10,
		Instructions:      "Tomar durante as refeições.",
		StartDate:         "2025-02-01T00:00:00Z",
		Active:            true,
	},
	{
		ID:                "med-3",
		Name:              "Vitamina D3",
		Dosage:            "2000UI",
		Form:              "Cápsula",
		Frequency:         domain.FrequencyWeekly,
		Times:             []string{"09:00"},
		Stock:             8,
		LowStockThreshold: 2,
		StartDate:         "2025-03-15T00:00:00Z",
		Active:            true,
	},
}

var mockBarcodes = map[string]BarcodeInfo{
	"7891010101010": {Name: "Dipirona Sódica", Dosage: "500mg", Form: "Comprimido", Instructions: "Tomar em caso de dor ou febre."},
	"7892020202020": {Name: "Paracetamol", Dosage: "750mg", Form: "Comprimido", Instructions: "Tomar a cada 6 horas se necessário."},
	"7893030303030": {Name: "Ibuprofeno", Dosage: "600mg", Form: "Cápsula", Instructions: "Tomar após as refeições."},
}
