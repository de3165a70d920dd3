package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fleetledger/internal/catalog"
)

// UnknownOwner names the beneficiary of a third-party vehicle with no owner on file.
const UnknownOwner = "Dueño Desconocido"

var (
	DefaultOwnerRate = decimal.RequireFromString("0.80")
	DefaultAgentRate = decimal.RequireFromString("0.10")
)

// AgentRef is a commercial agent as referenced by a rental. ID is nil when
// the reference did not resolve to a known agent.
type AgentRef struct {
	ID   *uuid.UUID
	Name string
	DNI  string
}

// Share is one payout owed on a rental total.
type Share struct {
	Type            PayableType
	BeneficiaryName string
	BeneficiaryDNI  string
	Amount          int64
}

// PayoutCalculator splits a rental total into owner and agent shares. Each
// share is rounded half-up on its own, so shares need not add up exactly to
// the combined rate.
type PayoutCalculator struct {
	ownerRate decimal.Decimal
	agentRate decimal.Decimal
}

func NewPayoutCalculator(ownerRate, agentRate decimal.Decimal) *PayoutCalculator {
	return &PayoutCalculator{ownerRate: ownerRate, agentRate: agentRate}
}

// Amount is the share of total owed to a beneficiary of type t.
func (c *PayoutCalculator) Amount(t PayableType, total int64) int64 {
	rate := c.agentRate
	if t == PayableOwner {
		rate = c.ownerRate
	}

	return decimal.NewFromInt(total).Mul(rate).Round(0).IntPart()
}

// Compute returns the owner share when the vehicle belongs to a third party
// and the agent share when an agent is referenced.
func (c *PayoutCalculator) Compute(total int64, vehicle *catalog.Vehicle, agent *AgentRef) []Share {
	var shares []Share

	if vehicle != nil && vehicle.Ownership == catalog.OwnershipThirdParty {
		name := vehicle.OwnerName
		if name == "" {
			name = UnknownOwner
		}

		shares = append(shares, Share{
			Type:            PayableOwner,
			BeneficiaryName: name,
			BeneficiaryDNI:  vehicle.OwnerDNI,
			Amount:          c.Amount(PayableOwner, total),
		})
	}

	if agent != nil && agent.Name != "" {
		shares = append(shares, Share{
			Type:            PayableAgent,
			BeneficiaryName: agent.Name,
			BeneficiaryDNI:  agent.DNI,
			Amount:          c.Amount(PayableAgent, total),
		})
	}

	return shares
}
