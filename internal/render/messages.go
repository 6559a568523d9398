package render

// Fixed replies of the conversation front-end.
const (
	Welcome = `مرحباً! يمكنك:
1️⃣ إرسال معاملة نصية مثل:
   - بيع: 'بيع من أحمد إلى محمد زيت ب100000 بعمولة 2%'
   - شراء: 'شراء من محمد إلى أحمد زيت ب50000 بعمولة 3%'
   - صرف: 'صرف أحمد لمحمد 100 دولار بسعر 10000 بعمولة 3%'

2️⃣ تسجيل رسالة صوتية تحتوي على نفس المعلومات

الأوامر المتاحة:
/records - عرض جميع المعاملات
/commission - عرض سجل العمولات
/user بيع احمد - عرض معاملات البيع للمستخدم احمد
/user شراء محمد - عرض معاملات الشراء للمستخدم محمد
/user صرف احمد - عرض معاملات الصرف للمستخدم احمد
/clear - مسح جميع السجلات`

	NoTransactions     = "لا توجد معاملات مسجلة"
	NoCommissions      = "لا توجد عمولات مسجلة"
	Cleared            = "تم مسح جميع السجلات"
	UserUsage          = "الرجاء إدخال نوع المعاملة (بيع/شراء/صرف) واسم المستخدم"
	UserUnknownKind    = "نوع المعاملة يجب أن يكون 'بيع' أو 'شراء' أو 'صرف'"
	UnknownKind        = "❌ نوع المعاملة غير معروف. الأنواع المتاحة: بيع، شراء، صرف"
	IncompleteExchange = "❌ معلومات غير كاملة لمعاملة الصرف"
	IncompleteGoods    = "❌ معلومات غير كاملة للمعاملة"
	ExtractionFailed   = "❌ تعذر تحليل المعاملة، الرجاء إعادة صياغتها"
	VoiceProcessing    = "جاري معالجة الرسالة الصوتية..."
	VoiceFailed        = "❌ حدث خطأ أثناء معالجة الرسالة الصوتية"
	InternalError      = "❌ حدث خطأ، الرجاء المحاولة لاحقاً"
	transcriptHeader   = "🎤 تم تحويل الرسالة الصوتية إلى:\n"
	recordsHeader      = "📋 سجل المعاملات:\n\n"
	separator          = "━━━━━━━━━━━━━━"
	currency           = " ل.س"
)

// Transcript echoes the text a voice message was transcribed to.
func Transcript(text string) string {
	return transcriptHeader + text
}
