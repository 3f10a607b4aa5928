// Package importer reads batches of invoices from YAML files.
//
// # Batch Format
//
//	invoices:
//	  - first_name: jane
//	    last_name: doe
//	    email: jane@example.com   # optional
//	    description: Consulting
//	    date: 15-01-2024
//	    items:
//	      - description: Hours
//	        quantity: "10"
//	        unit_price: "50.00"
//	        tax_rate: "21%"
//
// Values are kept as strings and pass through the same validation rules
// as interactive entry. Unknown keys are rejected so that typos surface
// instead of silently dropping data.
//
// # Usage
//
//	batch, err := importer.LoadBatch("january.yaml")
//	if err != nil {
//	    return err
//	}
//	invoices, err := batch.Build(time.Now())
package importer
