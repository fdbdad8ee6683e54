package compile

import "github.com/vincenthz/werbolg/lang/ir"

// lambdaJob is a not-yet-compiled lambda body, queued by lowerExpr when
// it encounters an ir.LambdaExpr and drained by Finalize once every
// top-level function has been compiled. Lambda FunIds are pre-allocated
// here, continuing the numbering after every top-level function, so
// that a lambda can be referenced by FetchFun before its body has
// actually been compiled into the lambda-side code buffer.
type lambdaJob struct {
	resolver *moduleResolver
	ns       ir.Namespace
	impl     ir.FunImpl
}

// lambdaQueue hands out FunIds continuing after base (the number of
// top-level functions) and accumulates the jobs to compile, including
// any further lambdas discovered while compiling a queued one.
type lambdaQueue struct {
	base uint32
	jobs []lambdaJob
}

func newLambdaQueue(base int) *lambdaQueue {
	return &lambdaQueue{base: uint32(base)}
}

// push reserves a FunId for job and enqueues it, returning the id.
func (q *lambdaQueue) push(job lambdaJob) ir.FunId {
	id := ir.FunId(q.base + uint32(len(q.jobs)))
	q.jobs = append(q.jobs, job)
	return id
}
