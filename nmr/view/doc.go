// Package view holds the display-side collaborators of the filter pipeline:
// screen-to-value inversion, axis bound recomputation, display mode policy
// and per-tab zoom history. The pipeline consumes them through the
// [Inverter], [Recalculator] and [Display] interfaces.
package view
