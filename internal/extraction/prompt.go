package extraction

// systemPrompt asks for the persisted field names, so a model answer can be
// normalized without renaming keys.
const systemPrompt = `أنت مساعد ذكي لاستخراج بيانات المعاملات.
استخرج المعلومات التالية من النص:
- النوع: "بيع" أو "شراء" أو "صرف"
- البائع: اسم البائع
- المشتري: اسم المشتري
- المادة: المادة المباعة/المشتراة (فقط في حالة البيع والشراء)
- المبلغ: الرقم المذكور بعد "بقيمة" أو "ب" (فقط في حالة البيع والشراء)
- مبلغ_الدولار: الرقم قبل كلمة "دولار" (فقط في حالة الصرف)
- سعر_الدولار: الرقم بعد "سعر" أو "بسعر" (فقط في حالة الصرف)
- العمولة: النسبة المئوية بعد "عمولة" أو "بعمولة" محولة إلى عدد عشري (مثلاً 5% تصبح 0.05)

أجب بتنسيق JSON فقط، بدون أي نص إضافي.

أمثلة:
1. في حالة البيع أو الشراء:
{"النوع": "بيع", "البائع": "أحمد", "المشتري": "محمد", "المادة": "زيت", "المبلغ": 100000, "العمولة": 0.02}

2. في حالة الصرف:
{"النوع": "صرف", "البائع": "أحمد", "المشتري": "محمد", "مبلغ_الدولار": 100, "سعر_الدولار": 10000, "العمولة": 0.03}
`
