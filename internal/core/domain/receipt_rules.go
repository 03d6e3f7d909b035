package domain

// ReceiptRule marks an account item whose deals must carry a receipt.
// The ID is the accounting service's numeric account item identifier.
type ReceiptRule struct {
	Name string
	ID   int64
}

// DefaultReceiptRules is the built-in allow-list of receipt-required
// account items. It is configuration data: services take the list at
// construction so a deployment can swap it without touching code.
var DefaultReceiptRules = []ReceiptRule{
	{Name: "通信費", ID: 626477503},
	{Name: "交際費", ID: 626477505},
	{Name: "消耗品費", ID: 626477508},
	{Name: "事務用品費", ID: 626477509},
	{Name: "会議費", ID: 626477529},
	{Name: "新聞図書費", ID: 626477530},
	{Name: "雑費", ID: 626477534},
	{Name: "工具器具備品", ID: 626477442},
	{Name: "ソフトウェア", ID: 626477543},
	{Name: "旅費交通費", ID: 626477502},
	{Name: "租税公課", ID: 626477498},
}
