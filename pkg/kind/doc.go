/*
Package kind classifies arbitrary Go values into the closed set of categories
the cardmenu data model understands.

The categories mirror a dynamically typed value model: array, null, object,
string, number, boolean, undefined and function. Reference categories (array
and object) are the ones the structural comparator recurses into; everything
else is compared as a primitive.

	kind.Classify([]int{3}) // {array, reference}
	kind.Classify(nil)      // {null, value}
	kind.Classify(2)        // {number, value}
*/
package kind
