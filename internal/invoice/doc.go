// Package invoice defines the invoice entities, the derived total
// computation and the error taxonomy shared by storage and the console.
//
// Totals are never stored. TotalAmount is recomputed from the items on
// every call using decimal arithmetic, so it always reflects the current
// item data.
package invoice
