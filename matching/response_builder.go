package matching

import (
	"github.com/shopspring/decimal"

	"matchcore/messages"
	"matchcore/model"
)

// responseBuilder populates outbound messages via the external message
// factory, per spec.md §4.3. Every call that assigns an execID consumes
// exactly one value from the engine's execution sequence.
type responseBuilder struct {
	factory messages.ResponseMessageFactory
	execIDs *idSequence
}

// executionReportTrade reports order's state after applying the fills at
// [fillQtys[i]]@[fillPxs[i]] for i in range, with the given terminal
// ordStatus (spec.md §4.3). fillQtys/fillPxs are parallel slices.
func (rb *responseBuilder) executionReportTrade(order *model.WorkingOrder, fillPxs []decimal.Decimal, fillQtys []int64, ordStatus model.OrdStatus) *messages.ExecutionReport {
	report := rb.factory.NewExecutionReport()
	report.ClOrdID = order.ClOrdID
	report.OrderID = order.OrderID
	report.ExecID = rb.execIDs.next()
	report.ExecType = model.ExecTrade
	report.OrdStatus = ordStatus
	report.Side = order.Side
	report.Symbol = order.Symbol
	report.Source = order.Source
	report.CumQty = order.CumQty()
	report.LeavesQty = order.LeavesQty()
	for i := range fillQtys {
		report.NextFill(fillPxs[i], fillQtys[i])
	}
	return report
}

// executionReportCanceled reports a cancelled order. source is the
// cancel requester, which per spec.md §9 may differ from the order's
// original source, and is intentionally what this report carries.
func (rb *responseBuilder) executionReportCanceled(source string, order *model.WorkingOrder) *messages.ExecutionReport {
	report := rb.factory.NewExecutionReport()
	report.ClOrdID = order.ClOrdID
	report.OrderID = order.OrderID
	report.ExecID = rb.execIDs.next()
	report.ExecType = model.ExecCanceled
	report.OrdStatus = model.Canceled
	report.Side = order.Side
	report.Symbol = order.Symbol
	report.Source = source
	report.CumQty = order.CumQty()
	report.LeavesQty = order.LeavesQty()
	return report
}

// cancelReject reports that a cancel request could not be matched to an
// open order.
func (rb *responseBuilder) cancelReject(source string, cancel messages.OrderCancelRequest) *messages.OrderCancelReject {
	reject := rb.factory.NewOrderCancelReject()
	reject.ClOrdID = cancel.ClOrdID
	reject.OrderID = "None"
	reject.CxlRejReason = model.UnknownOrder
	reject.OrdStatus = model.Rejected
	reject.Source = source
	return reject
}
