package printing

// invoiceTemplate is the built-in HTML layout for an invoice document.
// It is rendered to PDF on A4 paper.
const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Invoice {{.Number}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 10pt; color: #111827; margin: 0; }
  h1 { font-size: 24pt; text-align: center; margin: 0 0 20px 0; }
  .meta { width: 100%; margin-bottom: 20px; }
  .meta td { border: none; padding: 0; }
  .meta .date { text-align: right; }
  .bill-to { margin-bottom: 20px; }
  .bill-to h2 { font-size: 12pt; margin: 10px 0 4px 0; }
  .bill-to .name { font-weight: bold; }
  table.items { width: 100%; border-collapse: collapse; }
  table.items th { background-color: #e5e5e5; font-size: 12pt; text-align: left; padding: 8px; border: 1px solid #9ca3af; }
  table.items td { padding: 6px; border: 1px solid #9ca3af; }
  table.items td.num { text-align: right; }
  table.totals { width: 50%; margin-left: auto; margin-top: 10px; border-collapse: collapse; }
  table.totals td { padding: 6px; border: 1px solid #9ca3af; text-align: right; }
  table.totals tr.balance td { font-weight: bold; }
  .status { text-align: center; margin-top: 20px; }
</style>
</head>
<body>
<h1>INVOICE</h1>

<table class="meta">
  <tr>
    <td>Invoice #: {{.Number}}</td>
    <td class="date">Date: {{formatDate .Date}}</td>
  </tr>
</table>

<div class="bill-to">
  <h2>Bill To:</h2>
  <div class="name">{{.Customer.Name}}</div>
  {{- if .Customer.Address}}
  <div>{{.Customer.Address}}</div>
  {{- end}}
  <div>{{.Customer.Email}}</div>
  {{- if .Customer.Phone}}
  <div>{{.Customer.Phone}}</div>
  {{- end}}
</div>

<table class="items">
  <tr>
    <th>Description</th>
    <th>Quantity</th>
    <th>Unit Price</th>
    <th>Subtotal</th>
  </tr>
  {{- range .LineItems}}
  <tr>
    <td>{{.Description}}</td>
    <td class="num">{{.Quantity}}</td>
    <td class="num">{{formatMoney .UnitPrice}}</td>
    <td class="num">{{formatMoney .Subtotal}}</td>
  </tr>
  {{- end}}
</table>

<table class="totals">
  <tr>
    <td>Subtotal:</td>
    <td>{{formatMoney .Total}}</td>
  </tr>
  {{- if .PaidAmount.IsPositive}}
  <tr>
    <td>Paid:</td>
    <td>{{formatMoney .PaidAmount}}</td>
  </tr>
  {{- end}}
  <tr class="balance">
    <td>Balance:</td>
    <td>{{formatMoney .Balance}}</td>
  </tr>
</table>

<p class="status">Status: {{.Status}}</p>
</body>
</html>
`
