/*
Package check is a micro test harness built on the structural comparator.

Assertions are built ahead of time and evaluated later. AssertIs compares by
identity, AssertEquals by structural equality. Every evaluation emits a
Result to the harness Reporter, including both values on failure.

	h := check.New(check.WithLogger(logger))
	suite := check.MakeSuite(
		h.AssertEquals("cx joins truthy chunks", func() any { return cx.MustJoin("foo", nil) }, "foo"),
		h.AssertIs("nil is nil", func() any { return nil }, nil),
	)
	ok := suite()

A suite runs every check even when earlier ones fail; failures are
independent observations.
*/
package check
