package email

// invoiceEmailTemplate is the HTML body of the invoice delivery email.
const invoiceEmailTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
  body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
  .container { max-width: 600px; margin: 0 auto; padding: 20px; }
  .header { background-color: #2563eb; color: white; padding: 20px; text-align: center; }
  .content { padding: 20px; background-color: #f9fafb; }
  .invoice-details { background-color: white; padding: 15px; margin: 20px 0; border-radius: 5px; }
  .detail-row { display: flex; justify-content: space-between; padding: 8px 0; border-bottom: 1px solid #e5e7eb; }
  .detail-row:last-child { border-bottom: none; }
  .detail-label { font-weight: bold; color: #6b7280; }
  .footer { text-align: center; padding: 20px; color: #6b7280; font-size: 12px; }
</style>
</head>
<body>
<div class="container">
  <div class="header"><h1>InvoiceMe</h1></div>
  <div class="content">
    <p>Dear {{.CustomerName}},</p>
    <p>Thank you for your business! Please find your invoice attached to this email.</p>
    <div class="invoice-details">
      <div class="detail-row"><span class="detail-label">Invoice Number:</span><span>{{.Number}}</span></div>
      <div class="detail-row"><span class="detail-label">Date:</span><span>{{.Date}}</span></div>
      <div class="detail-row"><span class="detail-label">Total Amount:</span><span>{{.Total}}</span></div>
      <div class="detail-row"><span class="detail-label">Balance Due:</span><span>{{.Balance}}</span></div>
    </div>
    <p>Please review the attached PDF for complete invoice details including line items.</p>
    <p>Best regards,<br>The InvoiceMe Team</p>
  </div>
  <div class="footer"><p>This is an automated email. Please do not reply to this message.</p></div>
</div>
</body>
</html>
`
