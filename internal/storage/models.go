package storage

// SalaryRecord is one instructor salary row. Pay fields stay as the
// source strings; the data files mix formats ("$85,000.00", "85000")
// and the service never does arithmetic on them.
type SalaryRecord struct {
	Name       string `json:"Name"`
	Title      string `json:"Title"`
	Department string `json:"Department"`
	Campus     string `json:"Campus"`
	BasePay    string `json:"Base Pay"`
	GrossPay   string `json:"Gross Pay"`
	HireDate   string `json:"Hire Date"`
}
