package cli

import (
	"github.com/mattn/go-runewidth"

	"github.com/calvinalkan/bills/internal/bill"
)

func (m *Menu) addBill() {
	name, ok := m.readLine(namePrompt)
	if !ok {
		return
	}

	amount, ok := m.readAmount()
	if !ok {
		return
	}

	m.store.Add(bill.Bill{Name: name, Amount: amount})
	m.logger.Debug("bill added", "name", name, "amount", amount)
	m.io.Println("Bill added!")
}

func (m *Menu) viewBills() {
	m.printBills()
}

func (m *Menu) removeBill() {
	m.printBills()

	name, ok := m.readLine(removePrompt)
	if !ok {
		return
	}

	if !m.store.Remove(name) {
		m.io.Println("Bill not found!")

		return
	}

	m.logger.Debug("bill removed", "name", name)
	m.io.Println("Bill removed!")
}

func (m *Menu) updateBill() {
	m.printBills()

	name, ok := m.readLine(updatePrompt)
	if !ok {
		return
	}

	amount, ok := m.readAmount()
	if !ok {
		return
	}

	if !m.store.Update(name, amount) {
		m.io.Println("Bill not found!")

		return
	}

	m.logger.Debug("bill updated", "name", name, "amount", amount)
	m.io.Println("Bill updated!")
}

// printBills lists bills in two columns. Names are padded by display width so
// CJK and other wide runes line up.
func (m *Menu) printBills() {
	bills := m.store.List()
	if len(bills) == 0 {
		m.io.Println("No bills.")

		return
	}

	amounts := make([]string, len(bills))
	nameWidth, amountWidth := 0, 0

	for i, b := range bills {
		amounts[i] = bill.FormatAmount(b.Amount, m.decimals)
		nameWidth = max(nameWidth, runewidth.StringWidth(b.Name))
		amountWidth = max(amountWidth, len(amounts[i]))
	}

	for i, b := range bills {
		m.io.Printf("  %s  %*s\n", runewidth.FillRight(b.Name, nameWidth), amountWidth, amounts[i])
	}
}
